package valueobject

import (
	"math"

	"github.com/skillswap/backend/internal/pkg/apperror"
)

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

// Rating оценка по пятибалльной шкале.
type Rating int

func NewRating(value int) (Rating, error) {
	if value < MinRating || value > MaxRating {
		return 0, apperror.New(apperror.ErrCodeValidation, "оценка должна быть от 1 до 5")
	}
	return Rating(value), nil
}

// NewOptionalRating подставляет оценку по умолчанию, если значение не передано.
func NewOptionalRating(value *int) (Rating, error) {
	if value == nil {
		return DefaultRating, nil
	}
	return NewRating(*value)
}

func (r Rating) Int() int {
	return int(r)
}

// RoundToTenth округляет до одного знака после запятой.
func RoundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// RatingStats агрегат оценок пользователя или навыка.
type RatingStats struct {
	Count     int
	Sum       int
	Breakdown [MaxRating]int
}

func (s *RatingStats) Add(r Rating) {
	if r < MinRating || r > MaxRating {
		return
	}
	s.Count++
	s.Sum += int(r)
	s.Breakdown[r-1]++
}

// Average возвращает среднее с точностью до десятых, 0 если оценок нет.
func (s RatingStats) Average() float64 {
	if s.Count == 0 {
		return 0
	}
	return RoundToTenth(float64(s.Sum) / float64(s.Count))
}

// StarCount количество отзывов с заданным числом звёзд.
func (s RatingStats) StarCount(stars int) int {
	if stars < MinRating || stars > MaxRating {
		return 0
	}
	return s.Breakdown[stars-1]
}
