package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMSE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			yPred:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:      "uniform half-unit errors",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5}),
			want:      0.25,
			tolerance: 1e-10,
		},
		{
			name:      "mixed errors",
			yTrue:     mat.NewVecDense(3, []float64{10.0, 20.0, 30.0}),
			yPred:     mat.NewVecDense(3, []float64{12.0, 18.0, 33.0}),
			want:      17.0 / 3.0,
			tolerance: 1e-10,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:   mat.NewVecDense(2, []float64{1.0, 2.0}),
			wantErr: true,
		},
		{
			name:    "empty vectors",
			yTrue:   &mat.VecDense{},
			yPred:   &mat.VecDense{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)

			if (err != nil) != tt.wantErr {
				t.Errorf("MSE() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("MSE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRMSE(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0})
	yPred := mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5})

	got, err := RMSE(yTrue, yPred)
	if err != nil {
		t.Fatalf("RMSE() error = %v", err)
	}
	if want := 0.5; math.Abs(got-want) > 1e-10 {
		t.Errorf("RMSE() = %v, want %v", got, want)
	}
}

func TestMAE(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   *mat.VecDense
		yPred   *mat.VecDense
		want    float64
		wantErr bool
	}{
		{
			name:  "perfect prediction",
			yTrue: mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred: mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			want:  0.0,
		},
		{
			name:  "symmetric errors",
			yTrue: mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred: mat.NewVecDense(4, []float64{2.0, 1.0, 4.0, 3.0}),
			want:  1.0,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(2, []float64{1.0, 2.0}),
			yPred:   mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MAE(tt.yTrue, tt.yPred)

			if (err != nil) != tt.wantErr {
				t.Errorf("MAE() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("MAE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   *mat.VecDense
		yPred   *mat.VecDense
		want    float64
		wantErr bool
	}{
		{
			name:  "perfect prediction",
			yTrue: mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred: mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			want:  1.0,
		},
		{
			name:  "mean prediction scores zero",
			yTrue: mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred: mat.NewVecDense(4, []float64{2.5, 2.5, 2.5, 2.5}),
			want:  0.0,
		},
		{
			name:  "worse than the mean is negative",
			yTrue: mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred: mat.NewVecDense(3, []float64{3.0, 2.0, 1.0}),
			want:  -3.0,
		},
		{
			name:    "constant target is undefined",
			yTrue:   mat.NewVecDense(3, []float64{5.0, 5.0, 5.0}),
			yPred:   mat.NewVecDense(3, []float64{4.0, 5.0, 6.0}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := R2Score(tt.yTrue, tt.yPred)

			if (err != nil) != tt.wantErr {
				t.Errorf("R2Score() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("R2Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExplainedVarianceScore(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0})

	// A constant offset in the residuals does not reduce explained variance,
	// unlike R².
	offset := mat.NewVecDense(4, []float64{2.0, 3.0, 4.0, 5.0})
	got, err := ExplainedVarianceScore(yTrue, offset)
	if err != nil {
		t.Fatalf("ExplainedVarianceScore() error = %v", err)
	}
	if math.Abs(got-1.0) > 1e-10 {
		t.Errorf("ExplainedVarianceScore() with offset predictions = %v, want 1.0", got)
	}

	r2, err := R2Score(yTrue, offset)
	if err != nil {
		t.Fatalf("R2Score() error = %v", err)
	}
	if r2 >= got {
		t.Errorf("R2Score() = %v should be below explained variance %v for offset predictions", r2, got)
	}
}
