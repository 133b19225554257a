package reports_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"wandercritic/internal/domain/reports"
)

func TestReport_Target(t *testing.T) {
	tests := []struct {
		name   string
		report reports.Report
		want   string
	}{
		{
			name: "place report shows place name",
			report: reports.Report{
				ContentType: reports.ContentPlace,
				PlaceID:     sql.NullInt64{Int64: 1, Valid: true},
				PlaceName:   sql.NullString{String: "Eilean Donan", Valid: true},
			},
			want: "Eilean Donan",
		},
		{
			name: "review report shows its place name",
			report: reports.Report{
				ContentType: reports.ContentReview,
				PlaceID:     sql.NullInt64{Int64: 1, Valid: true},
				ReviewID:    sql.NullInt64{Int64: 8, Valid: true},
				PlaceName:   sql.NullString{String: "Eilean Donan", Valid: true},
			},
			want: "Eilean Donan",
		},
		{
			name:   "bug report shows url",
			report: reports.Report{ContentType: reports.ContentBug, URL: "http://wandercritic.example/explore"},
			want:   "http://wandercritic.example/explore",
		},
		{
			name:   "anything else is unknown",
			report: reports.Report{ContentType: reports.ContentReview},
			want:   reports.UnknownTarget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.report.Target())
		})
	}
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, reports.TypeSpam.Valid())
	assert.False(t, reports.Type("rude").Valid())
	assert.True(t, reports.ContentBug.Valid())
	assert.False(t, reports.ContentType("user").Valid())
}
