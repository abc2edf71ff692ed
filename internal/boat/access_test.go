package boat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessibleBy(t *testing.T) {
	tests := []struct {
		name       string
		boatGroups []int
		userGroups []int
		wantAccess bool
	}{
		{"unrestricted boat, no memberships", nil, nil, true},
		{"unrestricted boat, some memberships", nil, []int{1, 2}, true},
		{"shared group", []int{1}, []int{1}, true},
		{"one of several shared", []int{1, 2, 3}, []int{3, 9}, true},
		{"no shared group", []int{1}, []int{2}, false},
		{"restricted boat, no memberships", []int{1, 2}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantAccess, AccessibleBy(tt.boatGroups, tt.userGroups))
		})
	}
}
