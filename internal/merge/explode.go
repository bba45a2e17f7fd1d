package merge

import (
	"regexp"
	"strconv"

	"github.com/taigalab/hourglass/internal/types"
)

// storyRefPattern extracts user story ids from an epic's free-text
// cross-reference field, e.g. "#12, #45".
var storyRefPattern = regexp.MustCompile(`#(\d+)`)

// ExplodeEpics flattens epics into one (story id → epic name) entry
// per referenced user story. Any story id that appears twice in the
// exploded set is a cardinality violation, even when both references
// come from the same epic: the story→epic join must stay many-to-one
// or task rows would duplicate downstream.
func ExplodeEpics(epics []types.Epic) (map[int]string, error) {
	claimed := make(map[int]string)
	for _, e := range epics {
		for _, m := range storyRefPattern.FindAllStringSubmatch(e.RelatedStoriesRaw, -1) {
			id, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, &types.InvalidRecordError{
					Table: "epics",
					Ref:   strconv.Itoa(e.ID),
					Field: "related_user_stories",
					Value: m[0],
					Err:   err,
				}
			}
			if _, dup := claimed[id]; dup {
				return nil, &types.CardinalityError{Table: "epics", Key: strconv.Itoa(id)}
			}
			claimed[id] = e.Name
		}
	}
	return claimed, nil
}
