package configs

import (
	"net/url"
	"time"
)

// Analytics configures the reporting sink. Enabled controls whether main
// initializes the client at all; an uninitialized client silently drops
// every event. Events are buffered and flushed either when BatchSize is
// reached or when FlushInterval elapses, whichever comes first.
type Analytics struct {
	Enabled bool `env:"ENABLED" envDefault:"false"`
	// Endpoint receives batched events as a JSON array via POST.
	Endpoint url.URL `env:"ENDPOINT" envDefault:"http://localhost:9000/collect"`
	// Buffer is the queue capacity; events beyond it are dropped.
	Buffer        int           `env:"BUFFER" envDefault:"1000"`
	BatchSize     int           `env:"BATCH_SIZE" envDefault:"50"`
	FlushInterval time.Duration `env:"FLUSH_INTERVAL" envDefault:"500ms"`
}
