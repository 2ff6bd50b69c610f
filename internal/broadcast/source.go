package broadcast

import (
	"context"
	"fmt"
	"os"
	"time"

	"Tonecast/pkg/modem"
	"Tonecast/pkg/packet"
)

// Source produces the payload for one broadcast cycle.
type Source func(ctx context.Context) (string, error)

func Static(text string) Source {
	return func(context.Context) (string, error) { return text, nil }
}

// File reads the payload from path on every generation.
func File(path string) Source {
	return func(context.Context) (string, error) {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return modem.NormalizeText(string(b)), nil
	}
}

// Timestamped prefixes the payload with "[2006-01-02T15:04] " in UTC.
func Timestamped(src Source, now func() time.Time) Source {
	return func(ctx context.Context) (string, error) {
		text, err := src(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("[%s] %s", now().UTC().Format("2006-01-02T15:04"), text), nil
	}
}

// Packet wraps the payload in a signed packet of the given kind under the
// "DATA" key. With a secret the payload is sealed first.
func Packet(kind string, src Source, secret []byte) Source {
	return func(ctx context.Context) (string, error) {
		text, err := src(ctx)
		if err != nil {
			return "", err
		}
		if len(secret) > 0 {
			if text, err = packet.Seal(text, secret); err != nil {
				return "", err
			}
		}
		p, err := packet.New(kind, packet.Field{Key: "DATA", Value: text}).Sign()
		if err != nil {
			return "", err
		}
		return p.Encode()
	}
}
