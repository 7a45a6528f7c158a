package db

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_LegacyPlantsOnly simulates a database created before
// the source column and the study_days table existed. Plant rows must survive,
// pick up the column default and be aggregated into daily totals.
func TestMigrate_UpgradePath_LegacyPlantsOnly(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	legacy := []string{
		`CREATE TABLE plants (
			id           TEXT PRIMARY KEY,
			species      TEXT NOT NULL
			             CHECK(species IN ('spruce','double_spruce','maple','flower')),
			seed         INTEGER NOT NULL,
			max_age_ns   INTEGER NOT NULL CHECK(max_age_ns > 0),
			final_age_ns INTEGER NOT NULL CHECK(final_age_ns >= 0),
			duration_ns  INTEGER NOT NULL CHECK(duration_ns >= 0),
			finished_at  TEXT NOT NULL,
			created_at   TEXT NOT NULL
		)`,
		`INSERT INTO plants VALUES ('a', 'spruce', 1, 1500000000000, 1500000000000, 1500000000000, '2026-02-02T10:00:00Z', '2026-02-02T10:00:00Z')`,
		`INSERT INTO plants VALUES ('b', 'maple', 2, 1500000000000, 600000000000, 600000000000, '2026-02-02T11:00:00Z', '2026-02-02T11:00:00Z')`,
		`INSERT INTO plants VALUES ('c', 'flower', 3, 1500000000000, 1500000000000, 1500000000000, '2026-02-03T09:00:00Z', '2026-02-03T09:00:00Z')`,
	}
	for _, stmt := range legacy {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db), "migration on legacy schema should succeed")

	var species, source string
	require.NoError(t, db.QueryRow(`SELECT species, source FROM plants WHERE id = 'b'`).Scan(&species, &source))
	assert.Equal(t, "maple", species, "plant rows survive migration")
	assert.Equal(t, "session", source, "legacy rows get the default source")

	var finishedNS int64
	require.NoError(t, db.QueryRow(`SELECT finished_ns FROM plants WHERE id = 'b'`).Scan(&finishedNS))
	assert.Equal(t, time.Date(2026, 2, 2, 11, 0, 0, 0, time.UTC).UnixNano(), finishedNS,
		"legacy rows get a sortable instant")

	var studyNS int64
	var plants int
	require.NoError(t, db.QueryRow(`SELECT study_ns, plants FROM study_days WHERE day = '2026-02-02'`).Scan(&studyNS, &plants))
	assert.Equal(t, int64(2100000000000), studyNS)
	assert.Equal(t, 2, plants)

	var days int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM study_days`).Scan(&days))
	assert.Equal(t, 2, days)

	// Re-running must not double the totals.
	require.NoError(t, Migrate(db))
	require.NoError(t, db.QueryRow(`SELECT plants FROM study_days WHERE day = '2026-02-02'`).Scan(&plants))
	assert.Equal(t, 2, plants)
}
