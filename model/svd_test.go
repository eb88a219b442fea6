package model

import (
	"context"
	"testing"
	"time"

	"github.com/rushteam/hybridrec/core"
)

func testTrainerConfig() core.TrainerConfig {
	return core.TrainerConfig{
		Factors:        10,
		Epochs:         20,
		LearningRate:   0.005,
		Regularization: 0.02,
		Seed:           1,
	}
}

func TestTrainSVDBiases(t *testing.T) {
	// generous 给所有商品打满分，harsh 给所有商品打低分；
	// 训练后对同一新商品的预测应保持这个序关系。
	interactions := []core.Interaction{
		{UserID: "generous", ProductID: "i1", Value: 5},
		{UserID: "generous", ProductID: "i2", Value: 5},
		{UserID: "generous", ProductID: "i3", Value: 5},
		{UserID: "harsh", ProductID: "i1", Value: 1},
		{UserID: "harsh", ProductID: "i2", Value: 1},
		{UserID: "harsh", ProductID: "i3", Value: 2},
	}
	m, err := TrainSVD(context.Background(), interactions, testTrainerConfig(), 1, 5)
	if err != nil {
		t.Fatalf("TrainSVD: %v", err)
	}

	if got := m.GlobalMean(); !almostEqual(got, 19.0/6, 1e-9) {
		t.Errorf("GlobalMean() = %v, want %v", got, 19.0/6)
	}

	for _, item := range []string{"i1", "i2", "i3"} {
		hi := m.Predict("generous", item)
		lo := m.Predict("harsh", item)
		if hi <= lo {
			t.Errorf("Predict(generous, %s) = %v, not above Predict(harsh, %s) = %v", item, hi, item, lo)
		}
	}
}

func TestTrainSVDPredictBounds(t *testing.T) {
	interactions := []core.Interaction{
		{UserID: "u1", ProductID: "i1", Value: 5},
		{UserID: "u1", ProductID: "i2", Value: 5},
		{UserID: "u2", ProductID: "i1", Value: 1},
	}
	m, err := TrainSVD(context.Background(), interactions, testTrainerConfig(), 1, 5)
	if err != nil {
		t.Fatalf("TrainSVD: %v", err)
	}

	for _, u := range []string{"u1", "u2", "stranger"} {
		for _, i := range []string{"i1", "i2", "unseen"} {
			got := m.Predict(u, i)
			if got < 1 || got > 5 {
				t.Errorf("Predict(%s, %s) = %v, out of [1,5]", u, i, got)
			}
		}
	}

	// 双侧未知退化为全局均值
	if got := m.Predict("stranger", "unseen"); !almostEqual(got, m.GlobalMean(), 1e-12) {
		t.Errorf("Predict(stranger, unseen) = %v, want global mean %v", got, m.GlobalMean())
	}
}

func TestTrainSVDClampsRatings(t *testing.T) {
	interactions := []core.Interaction{
		{UserID: "u1", ProductID: "i1", Value: 99},
		{UserID: "u1", ProductID: "i2", Value: -3},
	}
	m, err := TrainSVD(context.Background(), interactions, testTrainerConfig(), 1, 5)
	if err != nil {
		t.Fatalf("TrainSVD: %v", err)
	}
	// 99 -> 5, -3 -> 1
	if got := m.GlobalMean(); !almostEqual(got, 3, 1e-12) {
		t.Errorf("GlobalMean() = %v, want 3 after clamping", got)
	}
}

func TestTrainSVDDeterministic(t *testing.T) {
	interactions := []core.Interaction{
		{UserID: "u1", ProductID: "i1", Value: 4},
		{UserID: "u1", ProductID: "i2", Value: 2},
		{UserID: "u2", ProductID: "i1", Value: 5},
		{UserID: "u2", ProductID: "i3", Value: 3},
	}
	cfg := testTrainerConfig()

	m1, err := TrainSVD(context.Background(), interactions, cfg, 1, 5)
	if err != nil {
		t.Fatalf("TrainSVD: %v", err)
	}
	m2, err := TrainSVD(context.Background(), interactions, cfg, 1, 5)
	if err != nil {
		t.Fatalf("TrainSVD: %v", err)
	}

	for _, u := range []string{"u1", "u2"} {
		for _, i := range []string{"i1", "i2", "i3"} {
			if m1.Predict(u, i) != m2.Predict(u, i) {
				t.Errorf("same seed produced different Predict(%s, %s)", u, i)
			}
		}
	}
}

func TestTrainSVDEmpty(t *testing.T) {
	m, err := TrainSVD(context.Background(), nil, testTrainerConfig(), 1, 5)
	if err != nil {
		t.Fatalf("TrainSVD: %v", err)
	}
	if got := m.GlobalMean(); got != 0 {
		t.Errorf("GlobalMean() = %v, want 0", got)
	}
}

func TestTrainSVDDeadline(t *testing.T) {
	interactions := []core.Interaction{
		{UserID: "u1", ProductID: "i1", Value: 4},
	}
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := TrainSVD(ctx, interactions, testTrainerConfig(), 1, 5)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !core.IsTrainTimeout(err) {
		t.Errorf("expected TRAIN_TIMEOUT, got %v", err)
	}
}
