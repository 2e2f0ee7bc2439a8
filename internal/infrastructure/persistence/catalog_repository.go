package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/repository"
	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

type categoryRow struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Icon        string    `db:"icon"`
	CreatedAt   time.Time `db:"created_at"`
	SkillCount  int       `db:"skill_count"`
}

func (r categoryRow) toEntity() *entity.Category {
	return &entity.Category{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Icon:        r.Icon,
		CreatedAt:   r.CreatedAt,
		SkillCount:  r.SkillCount,
	}
}

const categorySelect = `
	SELECT c.id, c.name, c.description, c.icon, c.created_at,
	       COUNT(s.id) FILTER (WHERE s.is_active) AS skill_count
	FROM categories c
	LEFT JOIN skills s ON s.category_id = c.id
`

type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, description, icon, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, category.ID, category.Name, category.Description, category.Icon, category.CreatedAt)
	if constraint, ok := uniqueViolation(err); ok && constraint == constraintCategoryName {
		return apperror.ErrCategoryExists
	}
	if err != nil {
		return dbError(err, "не удалось создать категорию")
	}
	return nil
}

// Delete навыки категории остаются без неё (ON DELETE SET NULL).
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return dbError(err, "не удалось удалить категорию")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperror.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var row categoryRow
	query := categorySelect + ` WHERE c.id = $1 GROUP BY c.id`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, notFoundOr(err, apperror.ErrCategoryNotFound, "не удалось получить категорию")
	}
	return row.toEntity(), nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	var rows []categoryRow
	if err := r.db.SelectContext(ctx, &rows, categorySelect+` GROUP BY c.id ORDER BY c.name`); err != nil {
		return nil, dbError(err, "не удалось получить категории")
	}
	result := make([]*entity.Category, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toEntity())
	}
	return result, nil
}

type skillRow struct {
	ID                 uuid.UUID      `db:"id"`
	OwnerID            uuid.UUID      `db:"owner_id"`
	CategoryID         *uuid.UUID     `db:"category_id"`
	Title              string         `db:"title"`
	Description        string         `db:"description"`
	Level              string         `db:"level"`
	Duration           string         `db:"duration"`
	LocationPreference string         `db:"location_preference"`
	IsActive           bool           `db:"is_active"`
	ViewsCount         int            `db:"views_count"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
	OwnerUsername      string         `db:"owner_username"`
	CategoryName       sql.NullString `db:"category_name"`
	RatingSum          int            `db:"rating_sum"`
	ReviewCount        int            `db:"review_count"`
}

func (r skillRow) toEntity() *entity.Skill {
	stats := valueobject.RatingStats{Count: r.ReviewCount, Sum: r.RatingSum}
	return &entity.Skill{
		ID:                 r.ID,
		OwnerID:            r.OwnerID,
		CategoryID:         r.CategoryID,
		Title:              r.Title,
		Description:        r.Description,
		Level:              valueobject.SkillLevel(r.Level),
		Duration:           r.Duration,
		LocationPreference: valueobject.LocationMode(r.LocationPreference),
		IsActive:           r.IsActive,
		ViewsCount:         r.ViewsCount,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
		OwnerUsername:      r.OwnerUsername,
		CategoryName:       nullableString(r.CategoryName),
		AverageRating:      stats.Average(),
		ReviewCount:        r.ReviewCount,
	}
}

const skillSelect = `
	SELECT s.id, s.owner_id, s.category_id, s.title, s.description, s.level, s.duration,
	       s.location_preference, s.is_active, s.views_count, s.created_at, s.updated_at,
	       u.username AS owner_username, c.name AS category_name,
	       COALESCE(SUM(rv.rating), 0) AS rating_sum, COUNT(rv.id) AS review_count
	FROM skills s
	JOIN users u ON u.id = s.owner_id
	LEFT JOIN categories c ON c.id = s.category_id
	LEFT JOIN reviews rv ON rv.skill_id = s.id
`

const skillGroupBy = ` GROUP BY s.id, u.username, c.name`

var skillOrder = map[valueobject.SkillSort]string{
	valueobject.SkillSortRecent:  ` ORDER BY s.created_at DESC`,
	valueobject.SkillSortPopular: ` ORDER BY s.views_count DESC, s.created_at DESC`,
	valueobject.SkillSortRating:  ` ORDER BY COALESCE(AVG(rv.rating), 0) DESC, s.created_at DESC`,
}

type SkillRepository struct {
	db *sqlx.DB
}

func NewSkillRepository(db *sqlx.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) Create(ctx context.Context, skill *entity.Skill) error {
	query := `
		INSERT INTO skills (id, owner_id, category_id, title, description, level, duration,
		                    location_preference, is_active, views_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		skill.ID, skill.OwnerID, skill.CategoryID, skill.Title, skill.Description,
		string(skill.Level), skill.Duration, string(skill.LocationPreference),
		skill.IsActive, skill.ViewsCount, skill.CreatedAt, skill.UpdatedAt,
	)
	if err != nil {
		return dbError(err, "не удалось создать навык")
	}
	return nil
}

func (r *SkillRepository) Update(ctx context.Context, skill *entity.Skill) error {
	query := `
		UPDATE skills
		SET category_id = $2, title = $3, description = $4, level = $5, duration = $6,
		    location_preference = $7, is_active = $8, updated_at = $9
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		skill.ID, skill.CategoryID, skill.Title, skill.Description, string(skill.Level),
		skill.Duration, string(skill.LocationPreference), skill.IsActive, skill.UpdatedAt,
	)
	if err != nil {
		return dbError(err, "не удалось обновить навык")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperror.ErrSkillNotFound
	}
	return nil
}

// Delete заявки, переписка и отзывы удаляются каскадно внешними ключами.
func (r *SkillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return dbError(err, "не удалось удалить навык")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperror.ErrSkillNotFound
	}
	return nil
}

func (r *SkillRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Skill, error) {
	var row skillRow
	if err := r.db.GetContext(ctx, &row, skillSelect+` WHERE s.id = $1`+skillGroupBy, id); err != nil {
		return nil, notFoundOr(err, apperror.ErrSkillNotFound, "не удалось получить навык")
	}
	return row.toEntity(), nil
}

func (r *SkillRepository) Search(ctx context.Context, f repository.SkillFilter) ([]*entity.Skill, int, error) {
	where, args := skillConditions(f)

	var total int
	countQuery := `SELECT COUNT(*) FROM skills s JOIN users u ON u.id = s.owner_id` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, dbError(err, "не удалось посчитать навыки")
	}

	order, ok := skillOrder[f.Sort]
	if !ok {
		order = skillOrder[valueobject.SkillSortRecent]
	}
	query := skillSelect + where + skillGroupBy + order
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	var rows []skillRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, dbError(err, "не удалось выполнить поиск навыков")
	}
	return toSkills(rows), total, nil
}

func skillConditions(f repository.SkillFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.ActiveOnly {
		conds = append(conds, "s.is_active")
	}
	if f.OwnerID != nil {
		add("s.owner_id = $%d", *f.OwnerID)
	}
	if f.ExcludeOwner != nil {
		add("s.owner_id <> $%d", *f.ExcludeOwner)
	}
	if f.CategoryID != nil {
		add("s.category_id = $%d", *f.CategoryID)
	}
	if f.Level != nil {
		add("s.level = $%d", string(*f.Level))
	}
	if f.Location != nil {
		add("s.location_preference = $%d", string(*f.Location))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(s.title ILIKE $%d OR s.description ILIKE $%d OR u.username ILIKE $%d)", n, n, n))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *SkillRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `UPDATE skills SET views_count = views_count + 1 WHERE id = $1`, id)
	if err != nil {
		return dbError(err, "не удалось обновить счётчик просмотров")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperror.ErrSkillNotFound
	}
	return nil
}

func (r *SkillRepository) ListRelated(ctx context.Context, skill *entity.Skill, limit int) ([]*entity.Skill, error) {
	if skill.CategoryID == nil {
		return []*entity.Skill{}, nil
	}
	query := skillSelect + `
		WHERE s.category_id = $1 AND s.id <> $2 AND s.is_active` +
		skillGroupBy + skillOrder[valueobject.SkillSortRecent] + ` LIMIT $3`

	var rows []skillRow
	if err := r.db.SelectContext(ctx, &rows, query, *skill.CategoryID, skill.ID, limit); err != nil {
		return nil, dbError(err, "не удалось получить похожие навыки")
	}
	return toSkills(rows), nil
}

func toSkills(rows []skillRow) []*entity.Skill {
	result := make([]*entity.Skill, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toEntity())
	}
	return result
}
