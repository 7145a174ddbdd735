package services

import (
	"context"
	"sort"
	"strings"

	meetingentities "scribe/server/modules/meeting/domain/entities"
	meetingrepositories "scribe/server/modules/meeting/domain/repositories"
	insightentities "scribe/server/modules/insight/domain/entities"
	keywordservices "scribe/server/modules/insight/domain/services"
	"scribe/server/seedwork/apperror"
)

// allPriorMeetings tells ListBeforeOwned to return every prior meeting
// rather than a bounded window (GORM's Limit(-1) removes the clause).
const allPriorMeetings = -1

var followUpPhrases = []string{
	"follow up", "following up", "last time", "previously", "as discussed",
	"we agreed", "circling back", "checking in on", "update on",
}

// InsightEngine computes the six insight categories and the what-changed
// diff over a user's meeting corpus (component G). All computation is pure
// over its inputs and deterministic for fixed transcript content (§4.G).
type InsightEngine struct {
	meetingRepo meetingrepositories.MeetingRepository
}

func NewInsightEngine(meetingRepo meetingrepositories.MeetingRepository) *InsightEngine {
	return &InsightEngine{meetingRepo: meetingRepo}
}

// Compute returns up to six cards for the focal meeting plus the
// what-changed diff against its single most recent predecessor.
func (e *InsightEngine) Compute(ctx context.Context, userID, meetingID string) ([]insightentities.Card, *insightentities.WhatChanged, error) {
	focal, err := e.meetingRepo.FindByIDOwned(ctx, meetingID, userID)
	if err != nil {
		return nil, nil, apperror.NotFound("meeting not found")
	}

	prior, err := e.meetingRepo.ListBeforeOwned(ctx, userID, focal, allPriorMeetings)
	if err != nil {
		return nil, nil, apperror.Storage("failed to load prior meetings", err)
	}

	if len(prior) == 0 {
		return []insightentities.Card{}, &insightentities.WhatChanged{HasPrior: false}, nil
	}

	cards := []insightentities.Card{}
	if card := e.recurringTopics(focal, prior); card != nil {
		cards = append(cards, *card)
	}
	if card := e.unresolvedItems(focal, prior); card != nil {
		cards = append(cards, *card)
	}
	if card := e.followUpSignals(focal); card != nil {
		cards = append(cards, *card)
	}
	if card := e.recurringParticipants(focal, prior); card != nil {
		cards = append(cards, *card)
	}
	if card := e.newTopics(focal, prior); card != nil {
		cards = append(cards, *card)
	}
	if card := e.recurringSolutions(focal, prior); card != nil {
		cards = append(cards, *card)
	}

	whatChanged := e.whatChanged(focal, prior[0])

	return cards, whatChanged, nil
}

// recurringTopics is card 1.
func (e *InsightEngine) recurringTopics(focal *meetingentities.Meeting, prior []*meetingentities.Meeting) *insightentities.Card {
	focalSet := keywordservices.KeywordSet(focal.RawNotes)

	sharedSeen := make(map[string]bool)
	var sharedOrder []string
	var refs []insightentities.PriorMeetingRef

	for _, p := range prior {
		priorSet := keywordservices.KeywordSet(p.RawNotes)
		shared := intersectionTokens(focalSet, priorSet)
		if len(shared) < 2 {
			continue
		}
		for _, tok := range shared {
			if !sharedSeen[tok] {
				sharedSeen[tok] = true
				sharedOrder = append(sharedOrder, tok)
			}
		}
		if len(refs) < 5 {
			refs = append(refs, insightentities.PriorMeetingRef{MeetingID: p.GetID(), Title: p.Title})
		}
	}

	if len(refs) == 0 {
		return nil
	}
	if len(sharedOrder) > 6 {
		sharedOrder = sharedOrder[:6]
	}
	return &insightentities.Card{
		Kind:         insightentities.KindRecurringTopics,
		SharedTokens: sharedOrder,
		Meetings:     refs,
	}
}

// unresolvedItems is card 2: the lossy single-keyword-substring heuristic.
func (e *InsightEngine) unresolvedItems(focal *meetingentities.Meeting, prior []*meetingentities.Meeting) *insightentities.Card {
	focalText := strings.ToLower(focal.RawNotes)

	seen := make(map[string]bool)
	var tasks []string

	for _, p := range prior {
		for _, item := range p.Extraction().ActionItems {
			normalized := strings.ToLower(strings.TrimSpace(item.Task))
			if normalized == "" || seen[normalized] {
				continue
			}
			for _, kw := range keywordservices.Keywords(item.Task) {
				if strings.Contains(focalText, kw) {
					seen[normalized] = true
					tasks = append(tasks, item.Task)
					break
				}
			}
			if len(tasks) >= 5 {
				break
			}
		}
		if len(tasks) >= 5 {
			break
		}
	}

	if len(tasks) == 0 {
		return nil
	}
	return &insightentities.Card{Kind: insightentities.KindUnresolvedItems, Tasks: tasks}
}

// followUpSignals is card 3.
func (e *InsightEngine) followUpSignals(focal *meetingentities.Meeting) *insightentities.Card {
	lowered := strings.ToLower(focal.RawNotes)
	var found []string
	for _, phrase := range followUpPhrases {
		if strings.Contains(lowered, phrase) {
			found = append(found, phrase)
		}
	}
	if len(found) == 0 {
		return nil
	}
	return &insightentities.Card{Kind: insightentities.KindFollowUpSignals, Phrases: found}
}

// recurringParticipants is card 4. The +1 accounts for the focal meeting
// itself alongside the prior meetings a name co-occurred in (§4.G).
func (e *InsightEngine) recurringParticipants(focal *meetingentities.Meeting, prior []*meetingentities.Meeting) *insightentities.Card {
	focalPeople := toSet(keywordservices.People(focal.RawNotes))

	counts := make(map[string]int)
	for _, p := range prior {
		priorPeople := toSet(keywordservices.People(p.RawNotes))
		for name := range focalPeople {
			if priorPeople[name] {
				counts[name]++
			}
		}
	}

	if len(counts) == 0 {
		return nil
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	sort.SliceStable(names, func(i, j int) bool { return counts[names[i]] > counts[names[j]] })
	if len(names) > 5 {
		names = names[:5]
	}

	participants := make([]insightentities.ParticipantCount, 0, len(names))
	for _, name := range names {
		participants = append(participants, insightentities.ParticipantCount{
			Name:  titleCaseFirst(name),
			Count: counts[name] + 1,
		})
	}
	return &insightentities.Card{Kind: insightentities.KindRecurringParticipants, Participants: participants}
}

// newTopics is card 5: tokens in keywords(M) absent from every prior
// meeting's keyword set.
func (e *InsightEngine) newTopics(focal *meetingentities.Meeting, prior []*meetingentities.Meeting) *insightentities.Card {
	focalTokens := keywordservices.Keywords(focal.RawNotes)

	priorSets := make([]map[string]bool, len(prior))
	for i, p := range prior {
		priorSets[i] = keywordservices.KeywordSet(p.RawNotes)
	}

	var fresh []string
	for _, tok := range focalTokens {
		seenBefore := false
		for _, set := range priorSets {
			if set[tok] {
				seenBefore = true
				break
			}
		}
		if !seenBefore {
			fresh = append(fresh, tok)
		}
		if len(fresh) >= 8 {
			break
		}
	}

	if len(fresh) == 0 {
		return nil
	}
	return &insightentities.Card{Kind: insightentities.KindNewTopics, NewTokens: fresh}
}

// recurringSolutions is card 6.
func (e *InsightEngine) recurringSolutions(focal *meetingentities.Meeting, prior []*meetingentities.Meeting) *insightentities.Card {
	focalSolutions := focal.Extraction().ProposedSolutions

	seen := make(map[string]bool)
	var solutions []string

	for _, current := range focalSolutions {
		normalized := strings.ToLower(strings.TrimSpace(current))
		if normalized == "" || seen[normalized] {
			continue
		}
		currentSet := keywordservices.KeywordSet(current)

		matched := false
		for _, p := range prior {
			for _, priorSolution := range p.Extraction().ProposedSolutions {
				if keywordservices.SharedCount(currentSet, keywordservices.KeywordSet(priorSolution)) >= 2 {
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}

		if matched {
			seen[normalized] = true
			solutions = append(solutions, current)
		}
		if len(solutions) >= 5 {
			break
		}
	}

	if len(solutions) == 0 {
		return nil
	}
	return &insightentities.Card{Kind: insightentities.KindRecurringSolutions, Solutions: solutions}
}

// whatChanged is the pairwise diff against the single most recent prior
// meeting (§4.G).
func (e *InsightEngine) whatChanged(focal, priorMeeting *meetingentities.Meeting) *insightentities.WhatChanged {
	focalExtraction := focal.Extraction()
	priorExtraction := priorMeeting.Extraction()

	newItems, resolvedItems := diffNormalized(taskTexts(focalExtraction.ActionItems), taskTexts(priorExtraction.ActionItems))
	newSolutions, droppedSolutions := diffNormalized(focalExtraction.ProposedSolutions, priorExtraction.ProposedSolutions)
	newQuestions, droppedQuestions := diffNormalized(focalExtraction.OpenQuestions, priorExtraction.OpenQuestions)
	newTopics, droppedTopics := diffNormalized(keywordservices.Keywords(focal.RawNotes), keywordservices.Keywords(priorMeeting.RawNotes))

	return &insightentities.WhatChanged{
		HasPrior:             true,
		PriorMeetingID:       priorMeeting.GetID(),
		NewActionItems:       newItems,
		ResolvedSinceLast:    resolvedItems,
		NewSolutions:         newSolutions,
		DroppedSolutions:     droppedSolutions,
		NewOpenQuestions:     newQuestions,
		DroppedOpenQuestions: droppedQuestions,
		NewTopics:            newTopics,
		DroppedTopics:        droppedTopics,
	}
}

func taskTexts(items []meetingentities.ActionItem) []string {
	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.Task
	}
	return texts
}

// diffNormalized lowercase-trims both lists and returns the set-difference:
// entries only in current ("new"), and entries only in prior ("resolved" /
// "dropped" depending on the caller's naming).
func diffNormalized(current, prior []string) (onlyInCurrent, onlyInPrior []string) {
	currentSet := normalizedSet(current)
	priorSet := normalizedSet(prior)

	for normalized := range currentSet {
		if !priorSet[normalized] {
			onlyInCurrent = append(onlyInCurrent, normalized)
		}
	}
	for normalized := range priorSet {
		if !currentSet[normalized] {
			onlyInPrior = append(onlyInPrior, normalized)
		}
	}
	sort.Strings(onlyInCurrent)
	sort.Strings(onlyInPrior)
	return onlyInCurrent, onlyInPrior
}

func normalizedSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		normalized := strings.ToLower(strings.TrimSpace(item))
		if normalized != "" {
			set[normalized] = true
		}
	}
	return set
}

func intersectionTokens(a, b map[string]bool) []string {
	var shared []string
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	for token := range small {
		if large[token] {
			shared = append(shared, token)
		}
	}
	sort.Strings(shared)
	return shared
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

func titleCaseFirst(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
