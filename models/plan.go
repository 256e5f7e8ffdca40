package models

// Goal is the user's fitness objective. It drives the calorie target and protein factor.
type Goal string

const (
	GoalLoseFat     Goal = "Lose Fat"
	GoalGainMuscle  Goal = "Gain Muscle"
	GoalMaintenance Goal = "Maintenance"
)

// MacroTargets is derived from {goal, body weight}; never stored on its own.
type MacroTargets struct {
	CalorieTarget int     `json:"-"`
	ProteinGrams  float64 `json:"protein_g"`
	CarbsGrams    float64 `json:"carbs_g"`
	FatsGrams     float64 `json:"fats_g"`
}

type DailyPlanEntry struct {
	Day      string       `json:"day"`
	Workout  string       `json:"workout"`
	Calories int          `json:"calories"`
	Macros   MacroTargets `json:"macros"`
}

// WeeklyPlan always holds 7 entries, Monday first.
type WeeklyPlan []DailyPlanEntry

// ProfileRequest drives the rule-based daily and weekly plans.
type ProfileRequest struct {
	Name             string   `json:"name" binding:"required"`
	Goal             string   `json:"goal" binding:"required"`
	Height           float64  `json:"height" binding:"required,gt=0"`
	Weight           float64  `json:"weight" binding:"required,gt=0"`
	Equipment        []string `json:"equipment"`
	Cuisine          string   `json:"cuisine"`
	Age              *int     `json:"age,omitempty" binding:"omitempty,gt=0"`
	HealthConditions []string `json:"health_conditions,omitempty"`
}

// DailyPlan is the rule-based single-day plan. The BMI fields are omitted
// when height or weight fall outside a plausible range.
type DailyPlan struct {
	WorkoutPlan         []string     `json:"workout_plan"`
	RecommendedCalories int          `json:"recommended_calories"`
	Macros              MacroTargets `json:"macros"`
	BMI                 *float64     `json:"bmi,omitempty"`
	BMICategory         string       `json:"bmi_category,omitempty"`
	HealthyWeightKg     *WeightRange `json:"healthy_weight_kg,omitempty"`
}

type WeightRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ---------- AI plans ----------

type PlanKind string

const (
	PlanKindMeal    PlanKind = "meal"
	PlanKindWorkout PlanKind = "workout"
)

type MealPlanRequest struct {
	Goal           string  `json:"goal" binding:"required"`
	Calories       int     `json:"calories" binding:"required,gt=0"`
	DietType       string  `json:"diet_type" binding:"required"`
	Cuisine        string  `json:"cuisine" binding:"required"`
	Protein        float64 `json:"protein" binding:"required,gt=0"`
	DietPreference string  `json:"diet_preference,omitempty"`
	UserEmail      string  `json:"user_email,omitempty"`
}

type Meal struct {
	Dish        string  `json:"dish"`
	Description string  `json:"description"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fats        float64 `json:"fats"`
	Calories    float64 `json:"calories"`
}

type MealSummary struct {
	TotalProtein  float64 `json:"total_protein"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalFats     float64 `json:"total_fats"`
	TotalCalories float64 `json:"total_calories"`
	Notes         string  `json:"notes,omitempty"`
}

type MealPlan struct {
	Breakfast Meal        `json:"breakfast"`
	Lunch     Meal        `json:"lunch"`
	Snack     Meal        `json:"snack"`
	Dinner    Meal        `json:"dinner"`
	Summary   MealSummary `json:"summary"`
}

type WorkoutPlanRequest struct {
	Goal             string   `json:"goal" binding:"required"`
	AvailableTime    int      `json:"available_time" binding:"required,gt=0"`
	Equipment        []string `json:"equipment"`
	FitnessLevel     string   `json:"fitness_level" binding:"required"`
	Age              int      `json:"age" binding:"required,gt=0"`
	HealthConditions []string `json:"health_conditions,omitempty"`
	UserEmail        string   `json:"user_email,omitempty"`
}

const (
	SectionWarmUp   = "Warm-up"
	SectionMain     = "Main"
	SectionCoolDown = "Cool-down"

	DifficultyEasy = "Easy"
	DifficultyOK   = "OK"
	DifficultyHard = "Hard"
)

type Exercise struct {
	Exercise   string `json:"exercise"`
	Section    string `json:"section"`
	Muscles    string `json:"muscles"`
	Duration   string `json:"duration"`
	Difficulty string `json:"difficulty"`
	Tip        string `json:"tip"`
}

// WorkoutPlan is never empty once normalized.
type WorkoutPlan []Exercise
