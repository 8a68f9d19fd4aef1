package debate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/logosbot/logos/internal/debate"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  debate.Verdict
	}{
		{name: "silence prefix", reply: "NO", want: debate.VerdictSilent},
		{name: "silence prefix with trailing text", reply: "NO fallacy here", want: debate.VerdictSilent},
		{name: "termination token alone", reply: "CONCLUDE", want: debate.VerdictConclude},
		{name: "termination token embedded", reply: "CONCLUDE: done", want: debate.VerdictConclude},
		{name: "termination token mid-sentence", reply: "I must CONCLUDE this debate", want: debate.VerdictConclude},
		{name: "termination wins over silence prefix", reply: "NO, let us CONCLUDE", want: debate.VerdictConclude},
		{name: "lowercase token does not terminate", reply: "we should conclude", want: debate.VerdictPost},
		{name: "ordinary feedback", reply: "<@123>, where is your evidence?", want: debate.VerdictPost},
		{name: "empty reply", reply: "", want: debate.VerdictPost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, debate.Classify(tt.reply))
		})
	}
}

// Silent checks only the prefix, so a declining reply that mentions the
// termination token later still counts as silent.
func TestSilent(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  bool
	}{
		{name: "bare prefix", reply: "NO", want: true},
		{name: "prefix with trailing text", reply: "NO fallacy here", want: true},
		{name: "prefix with termination token after it", reply: "NO, let us CONCLUDE", want: true},
		{name: "termination token alone", reply: "CONCLUDE", want: false},
		{name: "ordinary feedback", reply: "<@123>, where is your evidence?", want: false},
		{name: "empty reply", reply: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, debate.Silent(tt.reply))
		})
	}
}
