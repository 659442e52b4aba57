package xhwaddr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddrClassification(t *testing.T) {
	tests := []struct {
		name      string
		addr      Addr
		unicast   bool
		multicast bool
		local     bool
		universal bool
		zero      bool
		broadcast bool
	}{
		{"universal_unicast", KindEUI48.MustParse("00-1A-2B-3C-4D-5E"), true, false, false, true, false, false},
		{"local_unicast", KindEUI48.MustParse("02-00-00-00-00-01"), true, false, true, false, false, false},
		{"multicast", KindEUI48.MustParse("01-00-5E-00-00-01"), false, true, false, true, false, false},
		{"broadcast", KindEUI48.Broadcast(), false, true, true, false, false, true},
		{"zero", KindMAC.Zero(), true, false, false, true, true, false},
		{"eui64_multicast", KindEUI64.MustParse("33-33-00-00-00-01-00-00"), false, true, true, false, false, false},
		{"oui", KindOUI.MustParse("AC-DE-48"), true, false, false, true, false, false},
		{"invalid", Addr{}, false, false, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unicast, tt.addr.IsUnicast(), "IsUnicast")
			assert.Equal(t, tt.multicast, tt.addr.IsMulticast(), "IsMulticast")
			assert.Equal(t, tt.local, tt.addr.IsLocallyAdministered(), "IsLocallyAdministered")
			assert.Equal(t, tt.universal, tt.addr.IsUniversallyAdministered(), "IsUniversallyAdministered")
			assert.Equal(t, tt.zero, tt.addr.IsZero(), "IsZero")
			assert.Equal(t, tt.broadcast, tt.addr.IsBroadcast(), "IsBroadcast")
		})
	}
}

func TestClassificationNarrowKinds(t *testing.T) {
	k := mustKind(t, "T4", 4, "x")
	a := k.MustFromUint64(0xf)
	assert.False(t, a.IsMulticast())
	assert.False(t, a.IsUnicast())
	assert.True(t, a.IsBroadcast())
	assert.True(t, k.Zero().IsZero())
}
