// internal/calibration/store_test.go
package calibration

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engineerrors "medadmit-engine/internal/common/errors"
	"medadmit-engine/internal/common/logger"
)

var schoolParamsColumns = []string{
	"school_id", "name", "state", "is_public", "tier",
	"rural_mission", "research_intensive", "primary_care_focus", "hbcu", "diversity_focus",
	"intercept_interview", "intercept_accept",
	"slope_interview", "slope_accept",
	"instate_bonus_interview", "instate_bonus_accept",
}

func TestSQLSource_LoadSchools(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(schoolParamsColumns).
		AddRow("uvm-larner", "Larner College of Medicine", "VT", true, 3,
			false, false, true, false, false,
			-1.2, 0.1, 0.8, 0.4, 0.5, 0.15).
		AddRow("howard-com", "Howard University College of Medicine", "DC", false, 3,
			false, false, false, true, true,
			-1.5, -0.2, 0.8, 0.4, 0, 0)

	mock.ExpectQuery("SELECT school_id").WithArgs("v1").WillReturnRows(rows)

	src := NewSQLSource(db, logger.NewTestLogger(t))
	schools, err := src.LoadSchools(context.Background(), "v1")
	require.NoError(t, err)
	require.Len(t, schools, 2)

	uvm := schools["uvm-larner"]
	assert.Equal(t, "VT", uvm.Info.State)
	assert.True(t, uvm.Info.Public)
	assert.True(t, uvm.Info.Mission.PrimaryCareFocus)
	assert.Equal(t, 0.5, uvm.Params.InStateBonusInterview)

	howard := schools["howard-com"]
	assert.True(t, howard.Info.Mission.HBCU)
	assert.True(t, howard.Info.Mission.DiversityFocus)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSource_LoadSchools_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT school_id").WithArgs("v1").
		WillReturnError(errors.New("connection refused"))

	src := NewSQLSource(db, logger.NewTestLogger(t))
	_, err = src.LoadSchools(context.Background(), "v1")
	require.Error(t, err)
	assert.True(t, engineerrors.IsCode(err, engineerrors.ErrCodeStoreUnavailable))
}

func TestSQLSource_LoadSchools_OverlaysBundle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(schoolParamsColumns).
		AddRow("db-school", "Database School", "OH", true, 2,
			false, true, false, false, false,
			-2.0, 0.3, 1.0, 0.5, 0.6, 0.18)
	mock.ExpectQuery("SELECT school_id").WithArgs("v2").WillReturnRows(rows)

	src := NewSQLSource(db, logger.NewTestLogger(t))
	schools, err := src.LoadSchools(context.Background(), "v2")
	require.NoError(t, err)

	b := DefaultBundle().WithSchools(schools)
	assert.Len(t, b.Schools, 1)
	_, ok := b.SchoolParams("db-school")
	assert.True(t, ok)
	assert.Equal(t, "v1", b.Version, "bundle version unchanged by school overlay")
}
