// Package merge joins the three export tables into one denormalized
// row per task. Both joins are left joins validated as many-to-one:
// the output row count always equals the input task count, and a
// duplicated key on the "one" side aborts the run before any output
// exists.
package merge

import (
	"strconv"

	"github.com/taigalab/hourglass/internal/debug"
	"github.com/taigalab/hourglass/internal/types"
)

// Merge left-joins tasks to user stories and epics. Unresolved
// references stay null and are reported through the debug log, not as
// errors; they surface downstream as the sentinel groups.
func Merge(tasks []types.Task, stories []types.UserStory, epics []types.Epic) ([]types.MergedTask, error) {
	storySet := make(map[int]bool, len(stories))
	for _, s := range stories {
		if storySet[s.ID] {
			return nil, &types.CardinalityError{Table: "userstories", Key: strconv.Itoa(s.ID)}
		}
		storySet[s.ID] = true
	}

	epicByStory, err := ExplodeEpics(epics)
	if err != nil {
		return nil, err
	}

	merged := make([]types.MergedTask, 0, len(tasks))
	for _, t := range tasks {
		row := types.MergedTask{Task: t}
		if t.UserStoryID == nil {
			debug.Logf("merge: task %s has no user story link\n", t.TaskID)
		} else {
			if !storySet[*t.UserStoryID] {
				debug.Logf("merge: task %s references unknown user story %d\n", t.TaskID, *t.UserStoryID)
			}
			// Epic resolution goes by the task's story id directly;
			// it does not require the story row to exist.
			if name, ok := epicByStory[*t.UserStoryID]; ok {
				row.EpicName = name
			} else {
				debug.Logf("merge: user story %d (task %s) is not claimed by any epic\n", *t.UserStoryID, t.TaskID)
			}
		}
		merged = append(merged, row)
	}
	return merged, nil
}
