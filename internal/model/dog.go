package model

import "time"

type DogGender string

const (
	DogGenderMale   DogGender = "male"
	DogGenderFemale DogGender = "female"
)

type Dog struct {
	ID           int64      `json:"id"`
	FamilyID     int64      `json:"family_id"`
	Name         string     `json:"name"`
	BreedType    string     `json:"breed_type"`
	Gender       DogGender  `json:"gender"`
	BirthDate    *time.Time `json:"birth_date"`    // nil = дата рождения неизвестна
	ProfileImage *string    `json:"profile_image"` // путь к файлу, nil = без фото
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// AgeYears возвращает возраст в полных годах, -1 если дата рождения неизвестна
func (d *Dog) AgeYears(now time.Time) int {
	if d.BirthDate == nil {
		return -1
	}
	years := now.Year() - d.BirthDate.Year()
	if now.YearDay() < d.BirthDate.YearDay() {
		years--
	}
	if years < 0 {
		return -1
	}
	return years
}
