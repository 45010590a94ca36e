package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseMatches(t *testing.T) {
	type args struct {
		word       string
		candidates []string
		n          int
		cutoff     float64
	}
	tests := []struct {
		name    string
		args    args
		want    []string
		wantErr bool
	}{
		{
			name: "exact name wins over plural",
			args: args{word: "Widget", candidates: []string{"Widget", "Widgets"}, n: 1, cutoff: 0.8},
			want: []string{"Widget"},
		},
		{
			name: "difflib documentation example",
			args: args{word: "appel", candidates: []string{"ape", "apple", "peach", "puppy"}, n: 3, cutoff: 0.6},
			want: []string{"apple", "ape"},
		},
		{
			name: "nothing above cutoff",
			args: args{word: "Gadget", candidates: []string{"Widget", "Sprocket"}, n: 1, cutoff: 0.8},
		},
		{
			name: "no candidates",
			args: args{word: "Widget", n: 1, cutoff: 0.8},
		},
		{
			name: "equal scores ordered by larger string",
			args: args{word: "ab", candidates: []string{"ac", "ad"}, n: 2, cutoff: 0.5},
			want: []string{"ad", "ac"},
		},
		{
			name:    "invalid n",
			args:    args{word: "x", candidates: []string{"x"}, n: 0, cutoff: 0.8},
			wantErr: true,
		},
		{
			name:    "invalid cutoff",
			args:    args{word: "x", candidates: []string{"x"}, n: 1, cutoff: 1.5},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CloseMatches(tt.args.word, tt.args.candidates, tt.args.n, tt.args.cutoff)
			assert.Equal(t, tt.wantErr, err != nil, err)

			var names []string
			for _, m := range got {
				names = append(names, m.Candidate)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestBest(t *testing.T) {
	m, ok, err := Best("Widget", []string{"Widgets", "Widget"}, 0.8)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Widget", m.Candidate)
	assert.Equal(t, 1, m.Index)
	assert.Equal(t, 1.0, m.Score)

	_, ok, err = Best("Widget", nil, 0.8)
	require.NoError(t, err)
	assert.False(t, ok)
}
