package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

type userRow struct {
	ID               uuid.UUID  `db:"id"`
	Email            string     `db:"email"`
	Username         string     `db:"username"`
	PasswordHash     string     `db:"password_hash"`
	FirstName        string     `db:"first_name"`
	LastName         string     `db:"last_name"`
	IsStaff          bool       `db:"is_staff"`
	Bio              string     `db:"bio"`
	Location         string     `db:"location"`
	Phone            string     `db:"phone"`
	DateOfBirth      *time.Time `db:"date_of_birth"`
	AvatarPath       string     `db:"avatar_path"`
	ProfileCompleted bool       `db:"profile_completed"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

func (r userRow) toEntity() *entity.User {
	return &entity.User{
		ID:               r.ID,
		Email:            r.Email,
		Username:         r.Username,
		PasswordHash:     r.PasswordHash,
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		IsStaff:          r.IsStaff,
		Bio:              r.Bio,
		Location:         r.Location,
		Phone:            r.Phone,
		DateOfBirth:      r.DateOfBirth,
		AvatarPath:       r.AvatarPath,
		ProfileCompleted: r.ProfileCompleted,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

const userColumns = `id, email, username, password_hash, first_name, last_name, is_staff, bio,
	location, phone, date_of_birth, avatar_path, profile_completed, created_at, updated_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, username, password_hash, first_name, last_name, is_staff, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Username, user.PasswordHash,
		user.FirstName, user.LastName, user.IsStaff, user.CreatedAt, user.UpdatedAt,
	)
	if constraint, ok := uniqueViolation(err); ok {
		switch constraint {
		case constraintUserEmail:
			return apperror.ErrEmailTaken
		case constraintUserUsername:
			return apperror.ErrUsernameTaken
		}
	}
	if err != nil {
		return dbError(err, "не удалось создать пользователя")
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, bio = $4, location = $5, phone = $6,
		    date_of_birth = $7, avatar_path = $8, profile_completed = profile_completed OR $9,
		    updated_at = $10
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Bio, user.Location, user.Phone,
		user.DateOfBirth, user.AvatarPath, user.ProfileCompleted, user.UpdatedAt,
	)
	if err != nil {
		return dbError(err, "не удалось обновить профиль")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperror.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(username) = LOWER($1)`, username)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		return nil, notFoundOr(err, apperror.ErrUserNotFound, "не удалось получить пользователя")
	}
	return row.toEntity(), nil
}

type userSkillRow struct {
	ID               uuid.UUID `db:"id"`
	UserID           uuid.UUID `db:"user_id"`
	SkillName        string    `db:"skill_name"`
	SkillType        string    `db:"skill_type"`
	ProficiencyLevel string    `db:"proficiency_level"`
	CreatedAt        time.Time `db:"created_at"`
}

type UserSkillRepository struct {
	db *sqlx.DB
}

func NewUserSkillRepository(db *sqlx.DB) *UserSkillRepository {
	return &UserSkillRepository{db: db}
}

func (r *UserSkillRepository) Create(ctx context.Context, skill *entity.UserSkill) error {
	query := `
		INSERT INTO user_skills (id, user_id, skill_name, skill_type, proficiency_level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		skill.ID, skill.UserID, skill.SkillName, string(skill.SkillType), string(skill.ProficiencyLevel), skill.CreatedAt,
	)
	if constraint, ok := uniqueViolation(err); ok && constraint == constraintUserSkill {
		return apperror.ErrUserSkillExists
	}
	if err != nil {
		return dbError(err, "не удалось добавить навык в профиль")
	}
	return nil
}

func (r *UserSkillRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM user_skills WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return dbError(err, "не удалось удалить навык из профиля")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperror.ErrUserSkillNotFound
	}
	return nil
}

func (r *UserSkillRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserSkill, error) {
	var rows []userSkillRow
	query := `
		SELECT id, user_id, skill_name, skill_type, proficiency_level, created_at
		FROM user_skills
		WHERE user_id = $1
		ORDER BY skill_name
	`
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, dbError(err, "не удалось получить навыки профиля")
	}

	result := make([]*entity.UserSkill, 0, len(rows))
	for _, row := range rows {
		result = append(result, &entity.UserSkill{
			ID:               row.ID,
			UserID:           row.UserID,
			SkillName:        row.SkillName,
			SkillType:        valueobject.UserSkillType(row.SkillType),
			ProficiencyLevel: valueobject.SkillLevel(row.ProficiencyLevel),
			CreatedAt:        row.CreatedAt,
		})
	}
	return result, nil
}
