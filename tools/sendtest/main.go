package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/anilpotu/aws-s3-service/internal/app/bootstrap"
	"github.com/anilpotu/aws-s3-service/internal/app/config"
	"github.com/anilpotu/aws-s3-service/internal/app/infra/awsx"
	"github.com/anilpotu/aws-s3-service/internal/app/infra/persistence/redis"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/idgen"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/logger"
	"github.com/anilpotu/aws-s3-service/internal/app/producer"
)

var (
	configPath   = flag.String("config", "config/config.yaml", "配置文件路径")
	testcasePath = flag.String("testcase", "", "测试消息 JSON 数组路径，为空时使用内置样例")
	groupID      = flag.String("group", "sendtest", "FIFO 队列的 MessageGroupId")
	verify       = flag.Bool("verify", false, "订阅 redis relay channel，确认消费者已转发消息")
	verifyWait   = flag.Duration("verify-timeout", 30*time.Second, "等待转发消息的超时时间")
)

// malformedBody 非 JSON 消息体，用于验证消费者的原始字符串回退
const malformedBody = "not-json"

func main() {
	flag.Parse()

	fmt.Println("========================================")
	fmt.Println("  SendTest - 队列收发冒烟测试工具")
	fmt.Println("========================================")

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Config loaded: provider=%s\n", cfg.Queue.Provider)

	// 2. 加载测试消息
	payloads, err := loadPayloads(*testcasePath)
	if err != nil {
		fmt.Printf("❌ Failed to load test cases: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Loaded %d payloads\n", len(payloads))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. 初始化队列
	awsCfg, err := awsx.LoadConfig(ctx, cfg.AWS)
	if err != nil {
		fmt.Printf("❌ Failed to load aws config: %v\n", err)
		os.Exit(1)
	}
	queue, closeQueue, err := bootstrap.NewQueue(cfg.Queue, awsCfg, logger.NewNop())
	if err != nil {
		fmt.Printf("❌ Failed to init queue: %v\n", err)
		os.Exit(1)
	}
	defer closeQueue()
	p := producer.NewProducer(queue)

	group := ""
	if cfg.Queue.IsFIFOQueue() {
		group = *groupID
	}
	dedupIDs := idgen.NewGenerator("sendtest")

	// 4. 可选：订阅 relay channel
	var relayed chan string
	if *verify {
		relayed, err = subscribe(ctx, cfg.Redis, len(payloads)+1)
		if err != nil {
			fmt.Printf("❌ Failed to subscribe relay channel: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Subscribed to %s\n", cfg.Redis.RelayChannel)
	}

	// 5. 发送消息
	fmt.Println("\n========================================")
	fmt.Println("  Sending Messages")
	fmt.Println("========================================")

	sent, failed := 0, 0
	for i, payload := range payloads {
		dedup := ""
		if group != "" {
			dedup = dedupIDs.Next()
		}
		id, err := p.Send(ctx, payload, group, dedup)
		if err != nil {
			fmt.Printf("❌ [%d] send failed: %v\n", i+1, err)
			failed++
			continue
		}
		fmt.Printf("✅ [%d] message_id=%s\n", i+1, id)
		sent++
	}

	// FIFO 队列要求分组和去重 ID，非 JSON 消息只在标准队列上发送
	if group == "" {
		id, err := p.SendRaw(ctx, malformedBody)
		if err != nil {
			fmt.Printf("❌ [raw] send failed: %v\n", err)
			failed++
		} else {
			fmt.Printf("✅ [raw] message_id=%s body=%q\n", id, malformedBody)
			sent++
		}
	}

	// 6. 等待消费者转发
	received := 0
	if relayed != nil {
		fmt.Println("\n========================================")
		fmt.Println("  Waiting For Relay")
		fmt.Println("========================================")
		timeout := time.After(*verifyWait)
	wait:
		for received < sent {
			select {
			case msg := <-relayed:
				received++
				fmt.Printf("📨 relayed: %s\n", msg)
			case <-timeout:
				break wait
			}
		}
	}

	// 7. 输出汇总
	fmt.Println("\n========================================")
	fmt.Println("  Summary")
	fmt.Println("========================================")
	fmt.Printf("Sent: %d ✅\n", sent)
	fmt.Printf("Failed: %d ❌\n", failed)
	if relayed != nil {
		fmt.Printf("Relayed: %d/%d\n", received, sent)
	}

	if failed > 0 || (relayed != nil && received < sent) {
		os.Exit(1)
	}
}

// loadPayloads 从 JSON 文件加载测试消息
func loadPayloads(path string) ([]map[string]interface{}, error) {
	if path == "" {
		return []map[string]interface{}{
			{"id": 1, "event": "user.created", "user_id": "u-1001"},
			{"id": 2, "event": "user.updated", "user_id": "u-1001"},
		}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read testcase file: %w", err)
	}

	var payloads []map[string]interface{}
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, fmt.Errorf("failed to unmarshal testcase: %w", err)
	}
	return payloads, nil
}

// subscribe 持续订阅 relay channel，最多收取 limit 条
func subscribe(ctx context.Context, cfg config.RedisConfig, limit int) (chan string, error) {
	client, err := redis.NewPubSubClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	out := make(chan string, limit)
	msgs, err := client.Stream(ctx, cfg.RelayChannel)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	go func() {
		defer client.Close()
		for i := 0; i < limit; i++ {
			msg, ok := <-msgs
			if !ok {
				return
			}
			out <- msg
		}
	}()
	return out, nil
}
