package srp

import (
	"fmt"
	"math/big"
	"strings"
)

// Group is an SRP parameter set: a large safe prime modulus N and a generator g.
// Both peers must use the same group. Groups are read-only once constructed.
type Group struct {
	Name string
	N    *big.Int
	G    *big.Int
}

// Bits returns the size of the modulus in bits.
func (g *Group) Bits() int {
	return g.N.BitLen()
}

// byteLen returns the size of the modulus in bytes, used for PAD().
func (g *Group) byteLen() int {
	return (g.N.BitLen() + 7) / 8
}

// String implements fmt.Stringer.
func (g *Group) String() string {
	return fmt.Sprintf("%s (%d bits, g=%s)", g.Name, g.Bits(), g.G)
}

// NewGroup creates a custom parameter set.
// Only structurally impossible values are rejected; primality of N and the order of g are not checked.
//
//nolint:gocritic // N is capitalized per RFC 5054 SRP-6a specification
func NewGroup(name string, N, g *big.Int) (*Group, error) {
	if N == nil || g == nil {
		return nil, fmt.Errorf("group %q: N and g are required", name)
	}
	if N.Cmp(big.NewInt(3)) < 0 || N.Bit(0) != 1 {
		return nil, fmt.Errorf("group %q: N must be an odd integer greater than 2", name)
	}
	if g.Sign() <= 0 || g.Cmp(N) >= 0 {
		return nil, fmt.Errorf("group %q: g must be in [1, N)", name)
	}

	return &Group{
		Name: name,
		N:    new(big.Int).Set(N),
		G:    new(big.Int).Set(g),
	}, nil
}

// RFC 5054 Appendix A SRP Group Parameters
var (
	RFC5054Group1024 = mustGroup("rfc5054-1024", 2,
		"EEAF0AB9ADB38DD69C33F80AFA8FC5E86072618775FF3C0B9EA2314C9C256576D674DF7496EA81D3383B4813D692C6E0"+
			"E0D5D8E250B98BE48E495C1D6089DAD15DC7D7B46154D6B6CE8EF4AD69B15D4982559B297BCF1885C529F566660E57"+
			"EC68EDBC3C05726CC02FD4CBF4976EAA9AFD5138FE8376435B9FC61D2FC0EB06E3")

	RFC5054Group1536 = mustGroup("rfc5054-1536", 2,
		"9DEF3CAFB939277AB1F12A8617A47BBBDBA51DF499AC4C80BEEEA9614B19CC4D5F4F5F556E27CBDE51C6A94BE4607A29"+
			"1558903BA0D0F84380B655BB9A22E8DCDF028A7CEC67F0D08134B1C8B97989149B609E0BE3BAB63D47548381DBC5B1"+
			"FC764E3F4B53DD9DA1158BFD3E2B9C8CF56EDF019539349627DB2FD53D24B7C48665772E437D6C7F8CE442734AF7CC"+
			"B7AE837C264AE3A9BEB87F8A2FE9B8B5292E5A021FFF5E91479E8CE7A28C2442C6F315180F93499A234DCF76E3FED1"+
			"35F9BB")

	// RFC5054Group2048 is the default group.
	RFC5054Group2048 = mustGroup("rfc5054-2048", 2,
		"AC6BDB41324A9A9BF166DE5E1389582FAF72B6651987EE07FC3192943DB56050"+
			"A37329CBB4A099ED8193E0757767A13DD52312AB4B03310DCD7F48A9DA04FD50"+
			"E8083969EDB767B0CF6095179A163AB3661A05FBD5FAAAE82918A9962F0B93B8"+
			"55F97993EC975EEAA80D740ADBF4FF747359D041D5C33EA71D281E446B14773B"+
			"CA97B43A23FB801676BD207A436C6481F1D2B9078717461A5B9D32E688F87748"+
			"544523B524B0D57D5EA77A2775D2ECFA032CFBDBF52FB3786160279004E57AE6"+
			"AF874E7303CE53299CCC041C7BC308D82A5698F3A8D0C38271AE35F8E9DBFBB6"+
			"94B5C803D89F7AE435DE236D525F54759B65E372FCD68EF20FA7111F9E4AFF73")

	RFC5054Group3072 = mustGroup("rfc5054-3072", 5, modp3072)
	RFC5054Group4096 = mustGroup("rfc5054-4096", 5, modp4096)
	RFC5054Group6144 = mustGroup("rfc5054-6144", 5, modp6144)
	RFC5054Group8192 = mustGroup("rfc5054-8192", 19, modp8192)
)

// standardGroups lists the built-in groups, smallest first.
var standardGroups = []*Group{
	RFC5054Group1024,
	RFC5054Group1536,
	RFC5054Group2048,
	RFC5054Group3072,
	RFC5054Group4096,
	RFC5054Group6144,
	RFC5054Group8192,
}

// Groups returns the built-in RFC 5054 groups, smallest first.
func Groups() []*Group {
	out := make([]*Group, len(standardGroups))
	copy(out, standardGroups)
	return out
}

// GroupByName returns the built-in group with the given name (e.g. "rfc5054-2048").
// The lookup is case-insensitive and also accepts the bare bit size ("2048").
func GroupByName(name string) (*Group, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, g := range standardGroups {
		if g.Name == want || strings.TrimPrefix(g.Name, "rfc5054-") == want {
			return g, nil
		}
	}
	return nil, fmt.Errorf("unknown SRP group %q", name)
}

// GroupByBits returns the built-in group with a modulus of the given size.
func GroupByBits(bits int) (*Group, error) {
	for _, g := range standardGroups {
		if g.Bits() == bits {
			return g, nil
		}
	}
	return nil, fmt.Errorf("no SRP group with %d bit modulus", bits)
}

// mustGroup parses a built-in group; the tables are constants so failure is a build defect.
func mustGroup(name string, g int64, hexN string) *Group {
	n, ok := new(big.Int).SetString(hexN, 16)
	if !ok {
		panic(fmt.Sprintf("srp: can't parse modulus of group %s", name))
	}
	grp, err := NewGroup(name, n, big.NewInt(g))
	if err != nil {
		panic(fmt.Sprintf("srp: %v", err))
	}
	return grp
}
