package rewrite

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyRule_Rewrite(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		rule      KeyRule
		want      string
		wantCount int
	}{
		{
			name:      "quoted_assignment",
			content:   "[package]\nname = \"demo\"\nversion = \"0.1.6\"\nedition = \"2021\"\n",
			rule:      KeyRule{Key: "version = ", Value: "0.1.7", Quote: true},
			want:      "[package]\nname = \"demo\"\nversion = \"0.1.7\"\nedition = \"2021\"\n",
			wantCount: 1,
		},
		{
			name:      "bare_colon_assignment",
			content:   "name: demo\nversion: 0.1.6\ngrade: stable\n",
			rule:      KeyRule{Key: "version: ", Value: "0.1.7"},
			want:      "name: demo\nversion: 0.1.7\ngrade: stable\n",
			wantCount: 1,
		},
		{
			name:      "no_matching_line",
			content:   "name = \"demo\"\nedition = \"2021\"\n",
			rule:      KeyRule{Key: "version = ", Value: "0.1.7", Quote: true},
			want:      "name = \"demo\"\nedition = \"2021\"\n",
			wantCount: 0,
		},
		{
			name:      "every_matching_line_replaced",
			content:   "version: 0.1.5\nother: x\nversion: 0.1.6\n",
			rule:      KeyRule{Key: "version: ", Value: "0.2.0"},
			want:      "version: 0.2.0\nother: x\nversion: 0.2.0\n",
			wantCount: 2,
		},
		{
			name:      "prefix_match_is_exact_and_untrimmed",
			content:   "  version: 0.1.6\nversion:0.1.6\n",
			rule:      KeyRule{Key: "version: ", Value: "0.1.7"},
			want:      "  version: 0.1.6\nversion:0.1.6\n",
			wantCount: 0,
		},
		{
			name:      "last_line_without_newline_gains_one_when_replaced",
			content:   "name: demo\nversion: 0.1.6",
			rule:      KeyRule{Key: "version: ", Value: "0.1.7"},
			want:      "name: demo\nversion: 0.1.7\n",
			wantCount: 1,
		},
		{
			name:      "last_line_without_newline_kept_when_not_replaced",
			content:   "version: 0.1.6\nname: demo",
			rule:      KeyRule{Key: "version: ", Value: "0.1.7"},
			want:      "version: 0.1.7\nname: demo",
			wantCount: 1,
		},
		{
			name:      "empty_content",
			content:   "",
			rule:      KeyRule{Key: "version = ", Value: "0.1.7", Quote: true},
			want:      "",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count := tt.rule.Rewrite([]byte(tt.content))
			assert.Equal(t, tt.want, string(got))
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestKeyRule_LineCountPreserved(t *testing.T) {
	content := "a\nversion: 0.1.0\nb\nversion: 0.1.1\nc\n"
	rule := KeyRule{Key: "version: ", Value: "0.2.0"}

	got, count := rule.Rewrite([]byte(content))
	require.Equal(t, 2, count)
	assert.Len(t, splitAfterLines(got), len(splitAfterLines([]byte(content))))
}

func TestPatternRule_Rewrite(t *testing.T) {
	defaultRe := regexp.MustCompile(DefaultVersionPattern)

	tests := []struct {
		name      string
		content   string
		rule      PatternRule
		want      string
		wantCount int
	}{
		{
			name:      "single_token",
			content:   "Install version 0.1.6 today\n",
			rule:      PatternRule{Pattern: defaultRe, Value: "0.1.7"},
			want:      "Install version 0.1.7 today\n",
			wantCount: 1,
		},
		{
			name:      "all_tokens_converge",
			content:   "Install version 0.1.6 today\nSee also 0.1.5\n",
			rule:      PatternRule{Pattern: defaultRe, Value: "0.1.7"},
			want:      "Install version 0.1.7 today\nSee also 0.1.7\n",
			wantCount: 2,
		},
		{
			name:      "multiple_tokens_on_one_line",
			content:   "upgrade 0.1.5 -> 0.1.6\n",
			rule:      PatternRule{Pattern: defaultRe, Value: "0.2.0"},
			want:      "upgrade 0.2.0 -> 0.2.0\n",
			wantCount: 2,
		},
		{
			name:      "major_version_one_never_matches",
			content:   "Released as 1.2.3 yesterday\n",
			rule:      PatternRule{Pattern: defaultRe, Value: "9.9.9"},
			want:      "Released as 1.2.3 yesterday\n",
			wantCount: 0,
		},
		{
			name:      "no_match_is_byte_identical",
			content:   "nothing versiony here\n",
			rule:      PatternRule{Pattern: defaultRe, Value: "0.1.7"},
			want:      "nothing versiony here\n",
			wantCount: 0,
		},
		{
			name:      "surrounding_punctuation_preserved",
			content:   "(v0.1.6), see `0.1.6`.\n",
			rule:      PatternRule{Pattern: defaultRe, Value: "0.1.7"},
			want:      "(v0.1.7), see `0.1.7`.\n",
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count := tt.rule.Rewrite([]byte(tt.content))
			assert.Equal(t, tt.want, string(got))
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestNewPatternRule(t *testing.T) {
	rule, err := NewPatternRule(DefaultVersionPattern, "0.1.7")
	require.NoError(t, err)
	require.NotNil(t, rule.Pattern)

	_, err = NewPatternRule(`0\.(\d`, "0.1.7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling pattern")
}

func TestRule_Validate(t *testing.T) {
	assert.Error(t, KeyRule{Value: "0.1.7"}.Validate())
	assert.NoError(t, KeyRule{Key: "version = ", Value: "0.1.7"}.Validate())

	assert.Error(t, PatternRule{Value: "0.1.7"}.Validate())
	assert.NoError(t, PatternRule{Pattern: regexp.MustCompile(`x`)}.Validate())
}

func TestApply(t *testing.T) {
	content := []byte("version = \"0.1.6\"\ndocs say 0.1.6\n")
	pattern, err := NewPatternRule(DefaultVersionPattern, "0.1.7")
	require.NoError(t, err)

	result, err := Apply(content,
		KeyRule{Key: "version = ", Value: "0.1.7", Quote: true},
		pattern,
	)
	require.NoError(t, err)

	assert.Equal(t, string(content), string(result.OriginalContent))
	assert.Equal(t, "version = \"0.1.7\"\ndocs say 0.1.7\n", string(result.ModifiedContent))
	assert.True(t, result.WasModified)
	// key line plus the doc token, then the pattern re-matches the freshly
	// written quoted value
	assert.Equal(t, 3, result.ReplacementCount)

	_, err = Apply(content, KeyRule{Value: "0.1.7"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key is required")
}

func TestApply_Idempotent(t *testing.T) {
	content := []byte("version: 0.1.6\nSee 0.1.5 notes\n")
	pattern, err := NewPatternRule(DefaultVersionPattern, "0.1.7")
	require.NoError(t, err)
	rules := []Rule{KeyRule{Key: "version: ", Value: "0.1.7"}, pattern}

	first, err := Apply(content, rules...)
	require.NoError(t, err)
	second, err := Apply(first.ModifiedContent, rules...)
	require.NoError(t, err)

	assert.Equal(t, string(first.ModifiedContent), string(second.ModifiedContent))
	assert.False(t, second.WasModified)
}
