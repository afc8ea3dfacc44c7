package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/menumap/internal/matcher"
)

var catalogPolicy = matcher.Policy{PrefixLength: 15, MinOverlap: 2}

func TestRankTiers(t *testing.T) {
	keys := []string{
		"салат с курицей и овощами",
		"салат стефан",
		"карпаччо из стриплойна с пармезаном и трюфелем",
		"",
		"борщ",
	}

	tests := []struct {
		name  string
		query string
		want  []matcher.Candidate
	}{
		{
			name:  "exact beats everything",
			query: "салат стефан",
			want: []matcher.Candidate{
				{Index: 1, Key: "салат стефан", Tier: matcher.Exact},
			},
		},
		{
			name:  "prefix on long names",
			query: "карпаччо из стриплойна",
			want: []matcher.Candidate{
				{Index: 2, Key: "карпаччо из стриплойна с пармезаном и трюфелем", Tier: matcher.Prefix},
			},
		},
		{
			name:  "token overlap",
			query: "курица и овощи салат",
			want: []matcher.Candidate{
				{Index: 0, Key: "салат с курицей и овощами", Tier: matcher.Token, Score: 2},
			},
		},
		{
			name:  "no match",
			query: "лимонад",
		},
		{
			name:  "empty query",
			query: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matcher.Rank(tt.query, keys, catalogPolicy))
		})
	}
}

func TestRankOrdering(t *testing.T) {
	keys := []string{
		"утка с яблоками",
		"утка с яблоком и медом",
		"утка с яблоком",
		"утка с грушей",
	}

	ranked := matcher.Rank("утка с яблоком и грушей", keys, matcher.Policy{MinOverlap: 2})
	require.Len(t, ranked, 4)

	var order, scores []int
	for _, c := range ranked {
		order = append(order, c.Index)
		scores = append(scores, c.Score)
	}
	assert.Equal(t, []int{1, 2, 3, 0}, order)
	assert.Equal(t, []int{4, 3, 3, 2}, scores)
}

func TestPrefixIsRuneBased(t *testing.T) {
	// prefix length counts runes, not bytes
	keys := []string{"перепелка со шпинатом и картофельным пюре"}
	ranked := matcher.Rank("перепелка со шпинатом", keys, catalogPolicy)
	require.Len(t, ranked, 1)
	assert.Equal(t, matcher.Prefix, ranked[0].Tier)

	// short query: whole key is the prefix
	ranked = matcher.Rank("перепелка", keys, catalogPolicy)
	require.Len(t, ranked, 1)
	assert.Equal(t, matcher.Prefix, ranked[0].Tier)
}

func TestCategoryPolicyHasNoPrefixTier(t *testing.T) {
	keys := []string{"перепелка со шпинатом и картофельным пюре"}
	policy := matcher.Policy{MinOverlap: 3}

	assert.Empty(t, matcher.Rank("перепелка", keys, policy))

	ranked := matcher.Rank("перепелка со шпинатом", keys, policy)
	require.Len(t, ranked, 1)
	assert.Equal(t, matcher.Token, ranked[0].Tier)
	assert.Equal(t, 3, ranked[0].Score)
}

func TestBest(t *testing.T) {
	ix := matcher.NewIndex([]string{"борщ от шефа с говяжьим ребром", "борщ"})
	assert.Equal(t, 2, ix.Len())

	c, ok := ix.Best("борщ", catalogPolicy)
	require.True(t, ok)
	assert.Equal(t, 1, c.Index)
	assert.Equal(t, matcher.Exact, c.Tier)

	_, ok = ix.Best("солянка", catalogPolicy)
	assert.False(t, ok)
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "exact", matcher.Exact.String())
	assert.Equal(t, "prefix", matcher.Prefix.String())
	assert.Equal(t, "token", matcher.Token.String())
	assert.Equal(t, "none", matcher.None.String())
	assert.Equal(t, []matcher.Tier{matcher.Exact, matcher.Prefix, matcher.Token}, matcher.Tiers())
}
