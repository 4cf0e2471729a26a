package logx

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/eklimov/order-management-api/internal/config"
)

// New builds the root logger from config. With the Kafka sink enabled,
// every log line is mirrored to the configured topic; stdout always stays
// on. The returned closer flushes the sink and must run on shutdown.
func New(cfg config.Log, service string) (zerolog.Logger, func()) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	closer := func() {}
	if cfg.Kafka.Enabled {
		kw := NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic, service, 1024)
		out = zerolog.MultiLevelWriter(out, kw)
		closer = kw.Close
	}

	log := zerolog.New(out).Level(level).With().
		Timestamp().
		Str("service", service).
		Logger()
	return log, closer
}
