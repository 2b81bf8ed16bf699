// internal/calibration/store.go
package calibration

import (
	"context"
	"database/sql"

	engineerrors "medadmit-engine/internal/common/errors"
	"medadmit-engine/internal/common/logger"
)

// SQLSource loads per-institution calibrated constants from the versioned
// school_model_params table. The table is written by the offline calibration
// pipeline; this side only ever reads it.
type SQLSource struct {
	db     *sql.DB
	logger logger.Logger
}

func NewSQLSource(db *sql.DB, log logger.Logger) *SQLSource {
	return &SQLSource{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "calibration-store"}),
	}
}

const schoolParamsQuery = `
	SELECT school_id, name, state, is_public, tier,
	       rural_mission, research_intensive, primary_care_focus, hbcu, diversity_focus,
	       intercept_interview, intercept_accept,
	       slope_interview, slope_accept,
	       instate_bonus_interview, instate_bonus_accept
	FROM school_model_params
	WHERE version = $1`

// LoadSchools fetches the full school parameter set for one calibration
// version.
func (s *SQLSource) LoadSchools(ctx context.Context, version string) (map[string]School, error) {
	rows, err := s.db.QueryContext(ctx, schoolParamsQuery, version)
	if err != nil {
		return nil, engineerrors.NewStoreUnavailableError(err)
	}
	defer rows.Close()

	schools := make(map[string]School)
	for rows.Next() {
		var sc School
		err := rows.Scan(
			&sc.Info.ID, &sc.Info.Name, &sc.Info.State, &sc.Info.Public, &sc.Info.Tier,
			&sc.Info.Mission.RuralMission, &sc.Info.Mission.ResearchIntensive,
			&sc.Info.Mission.PrimaryCareFocus, &sc.Info.Mission.HBCU, &sc.Info.Mission.DiversityFocus,
			&sc.Params.InterceptInterview, &sc.Params.InterceptAccept,
			&sc.Params.SlopeInterview, &sc.Params.SlopeAccept,
			&sc.Params.InStateBonusInterview, &sc.Params.InStateBonusAccept,
		)
		if err != nil {
			return nil, engineerrors.NewStoreUnavailableError(err)
		}
		schools[sc.Info.ID] = sc
	}
	if err := rows.Err(); err != nil {
		return nil, engineerrors.NewStoreUnavailableError(err)
	}

	s.logger.Info("loaded school parameters", map[string]interface{}{
		"version": version,
		"count":   len(schools),
	})

	return schools, nil
}

// WithSchools returns a copy of the bundle with its school set replaced,
// leaving the original untouched.
func (b *Bundle) WithSchools(schools map[string]School) *Bundle {
	nb := *b
	nb.Schools = make(map[string]School, len(schools))
	for id, sc := range schools {
		if sc.Info.ID == "" {
			sc.Info.ID = id
		}
		nb.Schools[id] = sc
	}
	return &nb
}
