package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan() *Plan {
	return &Plan{
		ID: "plan-1",
		Weeks: []PlanWeek{
			{ID: "w1", Days: []PlanDay{{ID: "w1-push", Name: "Push Day"}, {ID: "w1-pull", Name: "Pull"}}},
			{ID: "w2", Days: []PlanDay{{ID: "w2-push", Name: "push  day"}, {ID: "w2-legs", Name: "Legs"}}},
		},
	}
}

func TestPlan_Day(t *testing.T) {
	p := testPlan()

	day, err := p.Day("w2", "w2-legs")
	require.NoError(t, err)
	assert.Equal(t, "Legs", day.Name)

	_, err = p.Day("w1", "w2-legs")
	assert.ErrorIs(t, err, ErrDayNotFound)
}

func TestPlan_DayIDsNamed(t *testing.T) {
	p := testPlan()
	assert.Equal(t, []string{"w1-push", "w2-push"}, p.DayIDsNamed("PUSH DAY"))
	assert.Empty(t, p.DayIDsNamed("Arms"))
}

func TestPlan_Validate(t *testing.T) {
	require.NoError(t, testPlan().Validate())

	noID := testPlan()
	noID.ID = ""
	assert.ErrorIs(t, noID.Validate(), ErrInvalidPlan)

	dup := testPlan()
	dup.Weeks[1].Days[0].ID = "w1-push"
	assert.ErrorIs(t, dup.Validate(), ErrInvalidPlan)

	blankDay := testPlan()
	blankDay.Weeks[0].Days[1].ID = ""
	assert.ErrorIs(t, blankDay.Validate(), ErrInvalidPlan)

	negative := testPlan()
	negative.Weeks[0].Days[0].Items = []PlanExercise{{ID: "i1", TargetSets: -1}}
	assert.ErrorIs(t, negative.Validate(), ErrInvalidPlan)
}
