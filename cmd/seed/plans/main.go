package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/mansoorceksport/liftlog/internal/config"
	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/repository"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Seeds a four-week upper/lower plan for one user.
func main() {
	userID := flag.String("user", "", "user id that owns the plan")
	planID := flag.String("plan", "", "plan id (generated when empty)")
	weeks := flag.Int("weeks", 4, "number of weeks")
	fullBody := flag.Bool("full-body", false, "scope ghost history to same-named days")
	flag.Parse()

	if *userID == "" {
		logrus.Fatal("-user is required")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		logrus.Fatalf("failed to connect to Mongo: %v", err)
	}
	defer client.Disconnect(ctx)

	id := *planID
	if id == "" {
		id = ulid.Make().String()
	}

	plan := buildPlan(id, *userID, *weeks, *fullBody)
	if err := plan.Validate(); err != nil {
		logrus.Fatalf("seed plan is invalid: %v", err)
	}

	repo := repository.NewMongoPlanRepository(client.Database(cfg.MongoDB.Database))
	if err := repo.Upsert(ctx, plan); err != nil {
		logrus.Fatalf("failed to store plan: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"plan_id": plan.ID,
		"user_id": plan.UserID,
		"weeks":   len(plan.Weeks),
	}).Info("plan seeded")
}

var (
	upperDay = []domain.PlanExercise{
		{Exercise: domain.ExerciseRef{ID: "barbell-bench-press", Name: "Barbell Bench Press"}, TargetSets: 4, TargetReps: "6-8"},
		{Exercise: domain.ExerciseRef{ID: "barbell-row", Name: "Barbell Row"}, TargetSets: 4, TargetReps: "8-10"},
		{Exercise: domain.ExerciseRef{Name: "Overhead Press"}, TargetSets: 3, TargetReps: "8-10"},
		{Exercise: domain.ExerciseRef{Name: "Lat Pulldown"}, TargetSets: 3, TargetReps: "10-12"},
	}
	lowerDay = []domain.PlanExercise{
		{Exercise: domain.ExerciseRef{ID: "barbell-squat", Name: "Barbell Squat"}, TargetSets: 4, TargetReps: "5"},
		{Exercise: domain.ExerciseRef{ID: "romanian-deadlift", Name: "Romanian Deadlift"}, TargetSets: 3, TargetReps: "8"},
		{Exercise: domain.ExerciseRef{Name: "Walking Lunge"}, TargetSets: 3, TargetReps: "12"},
		{Exercise: domain.ExerciseRef{Name: "Calf Raise"}, TargetSets: 4, TargetReps: "15"},
	}
)

func buildPlan(id, userID string, weeks int, fullBody bool) *domain.Plan {
	plan := &domain.Plan{
		ID:             id,
		UserID:         userID,
		Name:           "Upper / Lower",
		FullBodyGhosts: fullBody,
	}
	for w := 1; w <= weeks; w++ {
		weekID := fmt.Sprintf("w%d", w)
		plan.Weeks = append(plan.Weeks, domain.PlanWeek{
			ID:   weekID,
			Name: fmt.Sprintf("Week %d", w),
			Days: []domain.PlanDay{
				seedDay(weekID, "upper", "Upper", upperDay),
				seedDay(weekID, "lower", "Lower", lowerDay),
			},
		})
	}
	return plan
}

func seedDay(weekID, slug, name string, items []domain.PlanExercise) domain.PlanDay {
	day := domain.PlanDay{ID: weekID + "-" + slug, Name: name}
	for i, item := range items {
		item.ID = fmt.Sprintf("%s-%d", day.ID, i+1)
		day.Items = append(day.Items, item)
	}
	return day
}
