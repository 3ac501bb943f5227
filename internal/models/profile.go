// ABOUTME: Profile model with sex, activity level, and goal enums.
// ABOUTME: Zero-valued required fields mean "not provided yet".
package models

import "time"

// Sex selects the Mifflin-St Jeor constant.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// AllSexes returns all valid sex values.
var AllSexes = []Sex{SexMale, SexFemale, SexOther}

// ActivityLevel is one of five ordinal activity tiers.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// AllActivityLevels lists the tiers from least to most active.
var AllActivityLevels = []ActivityLevel{
	ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive,
}

// Goal is the user's body-weight objective.
type Goal string

const (
	GoalLoseWeight Goal = "lose_weight"
	GoalMaintain   Goal = "maintain"
	GoalGainWeight Goal = "gain_weight"
	GoalGainMuscle Goal = "gain_muscle"
)

// AllGoals returns all valid goals.
var AllGoals = []Goal{GoalLoseWeight, GoalMaintain, GoalGainWeight, GoalGainMuscle}

// IsValidSex checks if a string is a valid sex value.
func IsValidSex(s string) bool {
	for _, v := range AllSexes {
		if string(v) == s {
			return true
		}
	}
	return false
}

// IsValidActivityLevel checks if a string is a valid activity level.
func IsValidActivityLevel(s string) bool {
	for _, v := range AllActivityLevels {
		if string(v) == s {
			return true
		}
	}
	return false
}

// IsValidGoal checks if a string is a valid goal.
func IsValidGoal(s string) bool {
	for _, v := range AllGoals {
		if string(v) == s {
			return true
		}
	}
	return false
}

// Profile holds the physiological inputs for goal computation.
type Profile struct {
	WeightKg       float64       `json:"weight_kg,omitempty" yaml:"weight_kg,omitempty"`
	HeightCm       float64       `json:"height_cm,omitempty" yaml:"height_cm,omitempty"`
	Age            int           `json:"age,omitempty" yaml:"age,omitempty"`
	Sex            Sex           `json:"sex,omitempty" yaml:"sex,omitempty"`
	ActivityLevel  ActivityLevel `json:"activity_level,omitempty" yaml:"activity_level,omitempty"`
	Goal           Goal          `json:"goal,omitempty" yaml:"goal,omitempty"`
	TargetWeightKg *float64      `json:"target_weight_kg,omitempty" yaml:"target_weight_kg,omitempty"`
	UpdatedAt      time.Time     `json:"updated_at" yaml:"updated_at"`
}

// IsComplete reports whether every field required for energy calculations is set.
func (p *Profile) IsComplete() bool {
	if p == nil {
		return false
	}
	return p.WeightKg > 0 && p.HeightCm > 0 && p.Age > 0 && p.Sex != ""
}

// WithTargetWeight sets the target weight in kilograms.
func (p *Profile) WithTargetWeight(kg float64) *Profile {
	p.TargetWeightKg = &kg
	return p
}

// ProfileUpdate is a partial profile edit; nil fields keep their current value.
type ProfileUpdate struct {
	WeightKg       *float64       `json:"weight_kg,omitempty"`
	HeightCm       *float64       `json:"height_cm,omitempty"`
	Age            *int           `json:"age,omitempty"`
	Sex            *Sex           `json:"sex,omitempty"`
	ActivityLevel  *ActivityLevel `json:"activity_level,omitempty"`
	Goal           *Goal          `json:"goal,omitempty"`
	TargetWeightKg *float64       `json:"target_weight_kg,omitempty"`
}

// Apply copies the set fields of u onto p, allocating p when nil.
func (u ProfileUpdate) Apply(p *Profile) *Profile {
	if p == nil {
		p = &Profile{}
	}
	if u.WeightKg != nil {
		p.WeightKg = *u.WeightKg
	}
	if u.HeightCm != nil {
		p.HeightCm = *u.HeightCm
	}
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.Sex != nil {
		p.Sex = *u.Sex
	}
	if u.ActivityLevel != nil {
		p.ActivityLevel = *u.ActivityLevel
	}
	if u.Goal != nil {
		p.Goal = *u.Goal
	}
	if u.TargetWeightKg != nil {
		p.WithTargetWeight(*u.TargetWeightKg)
	}
	return p
}
