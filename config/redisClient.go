package config

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var Ctx = context.Background()
var RedisClient *redis.Client

// ConnectRedis initializes the Redis client. Redis backs the OTP store and
// the send rate limiter; when it is unreachable both fall back to in-process
// behavior, so failure here is a warning, not a crash.
func ConnectRedis() {
	redisAddr := os.Getenv("REDIS_ADDRESS")
	if redisAddr == "" {
		log.Println("REDIS_ADDRESS not set, running with in-memory OTP store")
		return
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       0, // default DB
	})

	if _, err := client.Ping(Ctx).Result(); err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		return
	}

	log.Println("Connected to Redis")
	RedisClient = client
}
