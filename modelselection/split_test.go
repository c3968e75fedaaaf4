package modelselection

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func makeIndexedData(n int) (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(n, 2, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, float64(i))
		X.Set(i, 1, float64(i)*10)
		y.SetVec(i, float64(i))
	}
	return X, y
}

func TestTrainTestSplitCounts(t *testing.T) {
	X, y := makeIndexedData(100)

	XTrain, XTest, yTrain, yTest, err := TrainTestSplit(X, y, 0.2, 42)
	if err != nil {
		t.Fatalf("TrainTestSplit() error = %v", err)
	}

	trainRows, _ := XTrain.Dims()
	testRows, _ := XTest.Dims()
	if trainRows != 80 || testRows != 20 {
		t.Errorf("split sizes = (%d, %d), want (80, 20)", trainRows, testRows)
	}
	if yTrain.Len() != trainRows || yTest.Len() != testRows {
		t.Errorf("target lengths = (%d, %d), want (%d, %d)", yTrain.Len(), yTest.Len(), trainRows, testRows)
	}
}

func TestTrainTestSplitDisjointAndComplete(t *testing.T) {
	X, y := makeIndexedData(50)

	_, _, yTrain, yTest, err := TrainTestSplit(X, y, 0.3, 7)
	if err != nil {
		t.Fatalf("TrainTestSplit() error = %v", err)
	}

	// Every original row appears exactly once across the two partitions. The
	// target doubles as a row identifier here.
	seen := make(map[int]int)
	for i := 0; i < yTrain.Len(); i++ {
		seen[int(yTrain.AtVec(i))]++
	}
	for i := 0; i < yTest.Len(); i++ {
		seen[int(yTest.AtVec(i))]++
	}

	if len(seen) != 50 {
		t.Fatalf("partitions cover %d distinct rows, want 50", len(seen))
	}
	for row, count := range seen {
		if count != 1 {
			t.Errorf("row %d appears %d times, want 1", row, count)
		}
	}
}

func TestTrainTestSplitDeterministic(t *testing.T) {
	X, y := makeIndexedData(30)

	_, _, _, yTest1, err := TrainTestSplit(X, y, 0.2, 42)
	if err != nil {
		t.Fatalf("TrainTestSplit() error = %v", err)
	}
	_, _, _, yTest2, err := TrainTestSplit(X, y, 0.2, 42)
	if err != nil {
		t.Fatalf("TrainTestSplit() error = %v", err)
	}

	for i := 0; i < yTest1.Len(); i++ {
		if yTest1.AtVec(i) != yTest2.AtVec(i) {
			t.Fatalf("same seed produced different test rows at %d: %v vs %v", i, yTest1.AtVec(i), yTest2.AtVec(i))
		}
	}

	_, _, _, yTest3, err := TrainTestSplit(X, y, 0.2, 43)
	if err != nil {
		t.Fatalf("TrainTestSplit() error = %v", err)
	}
	same := true
	for i := 0; i < yTest1.Len(); i++ {
		if yTest1.AtVec(i) != yTest3.AtVec(i) {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced an identical test partition")
	}
}

func TestTrainTestSplitValidation(t *testing.T) {
	X, y := makeIndexedData(10)

	if _, _, _, _, err := TrainTestSplit(X, y, 0, 42); err == nil {
		t.Error("testSize 0 should return an error")
	}
	if _, _, _, _, err := TrainTestSplit(X, y, 1, 42); err == nil {
		t.Error("testSize 1 should return an error")
	}
	if _, _, _, _, err := TrainTestSplit(nil, y, 0.2, 42); err == nil {
		t.Error("nil X should return an error")
	}

	short := mat.NewVecDense(5, nil)
	if _, _, _, _, err := TrainTestSplit(X, short, 0.2, 42); err == nil {
		t.Error("mismatched y length should return an error")
	}
}

func TestTrainTestSplitTinyData(t *testing.T) {
	X, y := makeIndexedData(2)

	XTrain, XTest, _, _, err := TrainTestSplit(X, y, 0.9, 42)
	if err != nil {
		t.Fatalf("TrainTestSplit() error = %v", err)
	}

	// At least one row always remains in the training partition.
	trainRows, _ := XTrain.Dims()
	testRows, _ := XTest.Dims()
	if trainRows < 1 {
		t.Errorf("train partition has %d rows, want at least 1", trainRows)
	}
	if trainRows+testRows != 2 {
		t.Errorf("partitions hold %d rows total, want 2", trainRows+testRows)
	}
}

func TestKFold(t *testing.T) {
	folds, err := KFold(10, 3, 42)
	if err != nil {
		t.Fatalf("KFold() error = %v", err)
	}
	if len(folds) != 3 {
		t.Fatalf("KFold() produced %d folds, want 3", len(folds))
	}

	// Sizes differ by at most one and every index appears exactly once.
	seen := make(map[int]int)
	for _, fold := range folds {
		if len(fold) < 3 || len(fold) > 4 {
			t.Errorf("fold size %d outside [3, 4]", len(fold))
		}
		for _, i := range fold {
			seen[i]++
		}
	}
	for i := 0; i < 10; i++ {
		if seen[i] != 1 {
			t.Errorf("index %d appears %d times, want 1", i, seen[i])
		}
	}
}

func TestKFoldValidation(t *testing.T) {
	if _, err := KFold(10, 1, 42); err == nil {
		t.Error("k=1 should return an error")
	}
	if _, err := KFold(3, 5, 42); err == nil {
		t.Error("k greater than n should return an error")
	}
}

func TestKFoldDeterministic(t *testing.T) {
	a, err := KFold(20, 4, 7)
	if err != nil {
		t.Fatalf("KFold() error = %v", err)
	}
	b, err := KFold(20, 4, 7)
	if err != nil {
		t.Fatalf("KFold() error = %v", err)
	}

	for f := range a {
		for i := range a[f] {
			if a[f][i] != b[f][i] {
				t.Fatalf("same seed produced different folds at [%d][%d]", f, i)
			}
		}
	}
}
