package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/flowguard/pkg/domain"
)

func TestDelayBlock_Seconds(t *testing.T) {
	tests := []struct {
		name    string
		amount  any
		unit    string
		want    float64
		wantErr error
	}{
		{"Default Unit", 30, "", 30, nil},
		{"Minutes", 2, "minutes", 120, nil},
		{"Hours", 1.5, "hours", 5400, nil},
		{"Days", 5, "days", 432000, nil},
		{"Unit Case Insensitive", 1, " Days ", 86400, nil},
		{"Numeric String", "10", "seconds", 10, nil},
		{"JSON Number", json.Number("7"), "", 7, nil},
		{"Missing", nil, "", 0, domain.ErrDelayMissing},
		{"Blank String", "  ", "", 0, domain.ErrDelayMissing},
		{"Not Numeric", "soon", "", 0, domain.ErrDelayNotNumeric},
		{"Bool", true, "", 0, domain.ErrDelayNotNumeric},
		{"Unknown Unit", 1, "weeks", 0, domain.ErrDelayUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.DelayBlock{Amount: tt.amount, Unit: tt.unit}.Seconds()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
