package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywords_DropsShortAndStopWords(t *testing.T) {
	got := Keywords("The migration and the rollout will happen this week, the migration is risky.")
	assert.Contains(t, got, "migration")
	assert.Contains(t, got, "rollout")
	assert.NotContains(t, got, "the")
	assert.NotContains(t, got, "will")
}

func TestKeywords_FrequencyRanked(t *testing.T) {
	got := Keywords("database database database rollout rollout authentication")
	assert.Equal(t, "database", got[0])
	assert.Equal(t, "rollout", got[1])
}

func TestKeywords_CapsAtTwenty(t *testing.T) {
	text := ""
	for i := 0; i < 30; i++ {
		text += "uniqueword" + string(rune('a'+i)) + " "
	}
	got := Keywords(text)
	assert.LessOrEqual(t, len(got), 20)
}

func TestKeywordSetAndSharedCount(t *testing.T) {
	a := KeywordSet("database migration rollout plan")
	b := KeywordSet("database migration authentication redesign")
	assert.Equal(t, 2, SharedCount(a, b))
}

func TestPeople_ParsesAttendeesLine(t *testing.T) {
	got := People("Attendees: Alice, Bob & Carol\nWe discussed the roadmap.")
	assert.ElementsMatch(t, []string{"alice", "bob", "carol"}, got)
}

func TestPeople_ParsesSpeakerPrefixLines(t *testing.T) {
	got := People("Alice: let's ship this\nBob: sounds good\nAlice: great")
	assert.ElementsMatch(t, []string{"alice", "bob"}, got)
}

func TestPeople_UnionsBothHeuristicsDeduped(t *testing.T) {
	got := People("Attendees: Alice, Bob\nAlice: kicking off\nCarol: joining late")
	assert.ElementsMatch(t, []string{"alice", "bob", "carol"}, got)
}

func TestPeople_IgnoresOverlongTokens(t *testing.T) {
	got := People("Attendees: Alice, Thisnameiswaytoolongtobevalid")
	assert.Equal(t, []string{"alice"}, got)
}

func TestPeople_NoAttendeesOrSpeakerLinesYieldsEmpty(t *testing.T) {
	got := People("just a plain paragraph of notes with no structure at all")
	assert.Empty(t, got)
}
