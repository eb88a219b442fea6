// recanalyze 是离线模型体检工具：
//   - 对矩阵分解模型做 k 折交叉验证，输出每折与平均的 RMSE/MAE
//   - 统计交互日志里最活跃的用户（这些 ID 必然触发完整混合链路，便于联调）
//
// 数据来源：JSONL 交互文件（与 recsvc 的 memory 种子格式一致）。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/model"
	"github.com/rushteam/hybridrec/store"
)

func main() {
	interactionsPath := flag.String("interactions", "data/interactions_final.json", "interactions JSONL file")
	folds := flag.Int("folds", 5, "number of cross-validation folds")
	topUsers := flag.Int("top-users", 10, "number of most active users to report")
	seed := flag.Int64("seed", 1, "shuffle seed for fold assignment")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ms := store.NewMemoryStore()
	n, err := ms.LoadInteractionsJSONL(*interactionsPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *interactionsPath).Msg("load interactions")
	}
	if n == 0 {
		logger.Fatal().Msg("interactions file is empty; run the seeder first")
	}
	logger.Info().Int("rows", n).Msg("loaded interaction records")

	interactions, err := ms.FetchAllInteractions(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("fetch interactions")
	}

	cfg := core.DefaultEngineConfig()
	logger.Info().
		Int("folds", *folds).
		Int("factors", cfg.Trainer.Factors).
		Int("epochs", cfg.Trainer.Epochs).
		Msg("running cross-validation on the matrix factorization model")

	result, err := model.CrossValidateSVD(
		context.Background(), interactions, cfg.Trainer,
		cfg.RatingMin, cfg.RatingMax, *folds, *seed,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("cross-validation failed")
	}

	fmt.Println("--- Collaborative Filtering Model Validation ---")
	for _, fm := range result.Folds {
		fmt.Printf("fold %d: RMSE=%.4f MAE=%.4f\n", fm.Fold+1, fm.RMSE, fm.MAE)
	}
	fmt.Printf("mean:   RMSE=%.4f MAE=%.4f\n\n", result.MeanRMSE, result.MeanMAE)

	printActiveUsers(interactions, *topUsers)
}

// printActiveUsers 输出评论数最多的用户，便于挑选联调用的真实 ID。
func printActiveUsers(interactions []core.Interaction, topN int) {
	counts := make(map[string]int)
	for _, in := range interactions {
		counts[in.UserID]++
	}

	type userCount struct {
		userID string
		count  int
	}
	ranked := make([]userCount, 0, len(counts))
	for id, c := range counts {
		ranked = append(ranked, userCount{userID: id, count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].userID < ranked[j].userID
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	fmt.Printf("--- TOP %d MOST ACTIVE USER IDs ---\n", topN)
	for _, uc := range ranked {
		fmt.Printf("%-32s %d\n", uc.userID, uc.count)
	}
}
