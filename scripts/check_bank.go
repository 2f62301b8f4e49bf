// 手动检查题库抽样分布
//
// 按配置加载题库，重复抽样并统计每道题被抽中的次数，
// 用于确认新题库足够大且抽样大致均匀。
//
// 用法: go run scripts/check_bank.go [-rounds 10000]

package main

import (
	"calibration_quiz/internal/config"
	"calibration_quiz/internal/service"
	"context"
	"flag"
	"fmt"
	"log"
	"sort"
)

func main() {
	rounds := flag.Int("rounds", 10000, "number of samples to draw")
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	storage, err := service.NewStorageService(&cfg.Quiz)
	if err != nil {
		log.Fatalf("题库来源配置错误: %v", err)
	}
	bank, err := storage.LoadBank(context.Background())
	if err != nil {
		log.Fatalf("加载题库失败: %v", err)
	}

	counts := make(map[string]int, bank.Len())
	for i := 0; i < *rounds; i++ {
		sample, err := bank.Sample(cfg.Quiz.SampleSize)
		if err != nil {
			log.Fatalf("抽样失败: %v", err)
		}
		for _, q := range sample {
			counts[q.Text]++
		}
	}

	questions := bank.Questions()
	sort.Slice(questions, func(i, j int) bool {
		return counts[questions[i].Text] < counts[questions[j].Text]
	})

	expected := float64(*rounds*cfg.Quiz.SampleSize) / float64(bank.Len())
	fmt.Printf("questions: %d, sample size: %d, rounds: %d, expected draws per question: %.1f\n",
		bank.Len(), cfg.Quiz.SampleSize, *rounds, expected)
	fmt.Printf("least drawn: %4d  %s\n", counts[questions[0].Text], questions[0].Text)
	last := questions[len(questions)-1]
	fmt.Printf("most drawn:  %4d  %s\n", counts[last.Text], last.Text)
}
