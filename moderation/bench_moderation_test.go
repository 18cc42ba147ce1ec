package moderation

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func generateWords(count int) []string {
	words := make([]string, 0, count)
	for i := 0; i < count; i++ {
		words = append(words, fmt.Sprintf("word%dx", i))
	}
	return words
}

func Test_Moderation_Build_Large_Dictionary(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)

	mod, err := NewModerator(generateWords(10_000), '*', log)
	req.NoError(err)

	// When a generated entry containing a leet digit is written verbatim
	content, words := mod.Censor("say word42x twice")

	// Then the original characters are masked and the match is reported normalized
	req.Equal("say ******* twice", content)
	req.Equal([]string{"worda2x"}, words)

	// And the leet spelling of the normalized form matches the same entry
	content, words = mod.Censor("say worda2x twice")
	req.Equal("say ******* twice", content)
	req.Equal([]string{"worda2x"}, words)
}

func BenchmarkModerator_Censor(b *testing.B) {
	log := logs.GetLoggerFromLevel(slog.LevelError)
	mod, err := NewModerator(generateWords(10_000), '*', log)
	if err != nil {
		b.Fatal(err)
	}
	line := "a perfectly ordinary chat line that mentions word9999x only once"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = mod.Censor(line)
	}
}
