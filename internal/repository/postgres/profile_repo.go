package postgres

import (
	"context"
	"errors"

	"peer-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	query := `SELECT id, user_id, full_name, bio, location, created_at, updated_at
              FROM profiles WHERE user_id = $1`
	var p domain.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Bio, &p.Location, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if p.Experience, err = r.fetchExperience(ctx, p.ID); err != nil {
		return nil, err
	}
	if p.Achievements, err = r.fetchAchievements(ctx, p.ID); err != nil {
		return nil, err
	}
	if p.Photos, err = r.fetchPhotos(ctx, p.ID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	query := `INSERT INTO profiles (user_id, full_name, bio, location, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRow(ctx, query,
		profile.UserID, profile.FullName, profile.Bio, profile.Location,
		profile.CreatedAt, profile.UpdatedAt,
	).Scan(&profile.ID)
}

func (r *profileRepo) Update(ctx context.Context, userID int64, upd domain.ProfileUpdate) error {
	// COALESCE keeps untouched columns; nil pointers arrive as NULL.
	query := `UPDATE profiles SET
		full_name = COALESCE($2, full_name),
		bio       = COALESCE($3, bio),
		location  = COALESCE($4, location),
		updated_at = NOW()
	WHERE user_id = $1`
	result, err := r.db.Exec(ctx, query, userID, upd.FullName, upd.Bio, upd.Location)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepo) fetchExperience(ctx context.Context, profileID int64) ([]domain.Experience, error) {
	query := `SELECT id, profile_id, title, company, start_date, end_date, description
              FROM experiences WHERE profile_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exps := []domain.Experience{}
	for rows.Next() {
		var e domain.Experience
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.Title, &e.Company, &e.StartDate, &e.EndDate, &e.Description); err != nil {
			return nil, err
		}
		exps = append(exps, e)
	}
	return exps, rows.Err()
}

func (r *profileRepo) fetchAchievements(ctx context.Context, profileID int64) ([]domain.Achievement, error) {
	query := `SELECT id, profile_id, title, description, date
              FROM achievements WHERE profile_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	achs := []domain.Achievement{}
	for rows.Next() {
		var a domain.Achievement
		if err := rows.Scan(&a.ID, &a.ProfileID, &a.Title, &a.Description, &a.Date); err != nil {
			return nil, err
		}
		achs = append(achs, a)
	}
	return achs, rows.Err()
}

func (r *profileRepo) fetchPhotos(ctx context.Context, profileID int64) ([]domain.ProfilePhoto, error) {
	query := `SELECT id, profile_id, url, uploaded_at
              FROM profile_photos WHERE profile_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := []domain.ProfilePhoto{}
	for rows.Next() {
		var p domain.ProfilePhoto
		if err := rows.Scan(&p.ID, &p.ProfileID, &p.URL, &p.UploadedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (r *profileRepo) AddExperience(ctx context.Context, exp *domain.Experience) error {
	query := `INSERT INTO experiences (profile_id, title, company, start_date, end_date, description)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRow(ctx, query,
		exp.ProfileID, exp.Title, exp.Company, exp.StartDate, exp.EndDate, exp.Description,
	).Scan(&exp.ID)
}

func (r *profileRepo) UpdateExperience(ctx context.Context, exp *domain.Experience) error {
	query := `UPDATE experiences SET title = $3, company = $4, start_date = $5, end_date = $6, description = $7
              WHERE id = $1 AND profile_id = $2`
	result, err := r.db.Exec(ctx, query,
		exp.ID, exp.ProfileID, exp.Title, exp.Company, exp.StartDate, exp.EndDate, exp.Description,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepo) DeleteExperience(ctx context.Context, profileID, expID int64) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM experiences WHERE id = $1 AND profile_id = $2`, expID, profileID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepo) AddAchievement(ctx context.Context, a *domain.Achievement) error {
	query := `INSERT INTO achievements (profile_id, title, description, date)
              VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRow(ctx, query,
		a.ProfileID, a.Title, a.Description, a.Date,
	).Scan(&a.ID)
}

func (r *profileRepo) UpdateAchievement(ctx context.Context, a *domain.Achievement) error {
	query := `UPDATE achievements SET title = $3, description = $4, date = $5
              WHERE id = $1 AND profile_id = $2`
	result, err := r.db.Exec(ctx, query, a.ID, a.ProfileID, a.Title, a.Description, a.Date)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepo) DeleteAchievement(ctx context.Context, profileID, achID int64) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM achievements WHERE id = $1 AND profile_id = $2`, achID, profileID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplacePhoto deletes any existing photos for the profile and inserts the
// new one in a single transaction, keeping "at most one photo" true.
func (r *profileRepo) ReplacePhoto(ctx context.Context, photo *domain.ProfilePhoto) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM profile_photos WHERE profile_id = $1`, photo.ProfileID); err != nil {
		return err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO profile_photos (profile_id, url, uploaded_at) VALUES ($1, $2, $3) RETURNING id`,
		photo.ProfileID, photo.URL, photo.UploadedAt,
	).Scan(&photo.ID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *profileRepo) DeletePhotos(ctx context.Context, profileID int64) ([]domain.ProfilePhoto, error) {
	rows, err := r.db.Query(ctx,
		`DELETE FROM profile_photos WHERE profile_id = $1 RETURNING id, profile_id, url, uploaded_at`,
		profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []domain.ProfilePhoto
	for rows.Next() {
		var p domain.ProfilePhoto
		if err := rows.Scan(&p.ID, &p.ProfileID, &p.URL, &p.UploadedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}
