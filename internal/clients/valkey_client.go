package clients

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/spacesedan/clinsight/internal/models"
	"github.com/spacesedan/clinsight/internal/utils"
)

var (
	valkeyInstance *ValkeyClient
	valkeyOnce     sync.Once
)

type ValkeyClient struct {
	Client valkey.Client
}

const (
	VALKEY_CONSENSUS_PREFIX = "clinsight:consensus:"

	consensusCacheTTL = 24 * time.Hour
)

func InitValkey() *ValkeyClient {
	valkeyOnce.Do(func() {
		valkeyAddr := os.Getenv("VALKEY_INIT_ADDRESS")
		valkeyPassword := os.Getenv("VALKEY_PASSWORD")
		useTLS := os.Getenv("VALKEY_TLS") == "true"

		opts := valkey.ClientOption{
			InitAddress: []string{
				valkeyAddr,
			},
			Password:         valkeyPassword,
			ConnWriteTimeout: 5 * time.Second,
			SelectDB:         0,
		}

		if useTLS {
			opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
		}

		client, err := valkey.NewClient(opts)
		if err != nil {
			panic(fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()

		c := client.Do(ctx, client.B().Ping().Build())
		if c.Error() != nil {
			panic(fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", c.Error()))
		}

		slog.Info("[ValkeyClient] Successfully connected to valkey")

		valkeyInstance = &ValkeyClient{Client: client}
	})
	return valkeyInstance
}

func CloseValkey() {
	if valkeyInstance != nil {
		valkeyInstance.Client.Close()
	}
}

func GetValkeyClient() *ValkeyClient {
	if valkeyInstance == nil {
		return InitValkey()
	}
	return valkeyInstance
}

// TranscriptHash derives the cache key suffix for a transcript.
func TranscriptHash(transcript string) string {
	hash := sha256.Sum256([]byte(transcript))
	return hex.EncodeToString(hash[:])
}

// CacheConsensus stores a consensus bundle under the transcript hash so
// re-analyzing an unchanged transcript can skip the provider round-trips.
func (vc *ValkeyClient) CacheConsensus(ctx context.Context, transcript string, consensus *models.ConsensusResult) error {
	payload, err := utils.SerializeToJSON(consensus)
	if err != nil {
		return fmt.Errorf("[ValkeyClient] failed to marshal consensus: %w", err)
	}

	key := VALKEY_CONSENSUS_PREFIX + TranscriptHash(transcript)
	cmd := vc.Client.B().Set().Key(key).Value(string(payload)).
		Ex(consensusCacheTTL).Build()
	if err := vc.Client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("[ValkeyClient] failed to cache consensus: %w", err)
	}

	slog.Info("[ValkeyClient] Consensus cached", slog.String("key", key))
	return nil
}

// GetCachedConsensus returns the cached bundle for a transcript, or nil when
// none is cached.
func (vc *ValkeyClient) GetCachedConsensus(ctx context.Context, transcript string) (*models.ConsensusResult, error) {
	key := VALKEY_CONSENSUS_PREFIX + TranscriptHash(transcript)

	resp := vc.Client.Do(ctx, vc.Client.B().Get().Key(key).Build())
	if valkey.IsValkeyNil(resp.Error()) {
		return nil, nil
	}
	if resp.Error() != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to read cached consensus: %w", resp.Error())
	}

	payload, err := resp.ToString()
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to decode cached consensus: %w", err)
	}

	var consensus models.ConsensusResult
	if err := utils.DeserializeFromJSON([]byte(payload), &consensus); err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to unmarshal cached consensus: %w", err)
	}

	return &consensus, nil
}
