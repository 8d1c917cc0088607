package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/illustspace/gsr/internal/registry/models"
	"github.com/illustspace/gsr/internal/registry/store"
	id "github.com/illustspace/gsr/pkg/domain"
	dErrors "github.com/illustspace/gsr/pkg/domain-errors"
	"github.com/illustspace/gsr/pkg/testutil"
)

var callerPool = []id.PrimaryAddress{
	callerA,
	callerB,
	callerC,
	"KT1ACTjebZPDFCvEbDHfiim4go22Dc6M5ARh",
}

// denyNth rejects the n-th authorization it sees (1-based) and allows the rest.
type denyNth struct {
	n, seen int
}

func (d *denyNth) AuthorizeMint(context.Context, id.PrimaryAddress) error {
	d.seen++
	if d.seen == d.n {
		return dErrors.New(dErrors.CodeForbidden, "denied")
	}
	return nil
}

func secondaryGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.StringMatching(`0x[0-9a-f]{1,6}`),
		rapid.String().Filter(func(s string) bool { return !strings.ContainsRune(s, 0) }),
	)
}

func batchGen() *rapid.Generator[[]models.Claim] {
	return rapid.Custom(func(t *rapid.T) []models.Claim {
		secondaries := rapid.SliceOfN(secondaryGen(), 1, 8).Draw(t, "secondaries")
		return claims(secondaries...)
	})
}

func newPropertyService(t require.TestingT, opts ...Option) (*Service, *store.InMemory) {
	st := store.NewInMemory()
	svc, err := New(st, st, opts...)
	require.NoError(t, err)
	return svc, st
}

// A successful batch of N claims moves the counter from C to C+N, issues
// C+1..C+N to the caller, and leaves the caller's alias at the last claim.
func TestProperty_MintAdvancesCounterAndOverwritesAlias(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		svc, st := newPropertyService(t)
		ctx := context.Background()

		rounds := rapid.IntRange(1, 6).Draw(t, "rounds")
		for r := 0; r < rounds; r++ {
			caller := rapid.SampledFrom(callerPool).Draw(t, "caller")
			batch := batchGen().Draw(t, "batch")
			before := st.Snapshot()

			receipts, err := svc.Mint(ctx, caller, batch)
			require.NoError(t, err)

			after := st.Snapshot()
			n := id.TokenID(len(batch))
			assert.Equal(t, before.LastTokenID+n, after.LastTokenID)
			require.Len(t, receipts, len(batch))
			for i, rc := range receipts {
				want := before.LastTokenID + id.TokenID(i) + 1
				assert.Equal(t, want, rc.TokenID)
				assert.Equal(t, caller, after.Owners[want])
				assert.Equal(t, models.FixedTokenInfo(), after.TokenInfo[want])
			}
			assert.Equal(t, batch[len(batch)-1].SecondaryAddress, after.Aliases[caller])
			assert.Len(t, after.Owners, int(after.LastTokenID))
			assert.Len(t, after.TokenInfo, int(after.LastTokenID))
		}
	})
}

// CheckAliasAddress succeeds exactly when the claim equals the recorded
// alias, and reports a lookup miss for addresses that never minted.
func TestProperty_CheckAliasAddressMatchesModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		svc, _ := newPropertyService(t)
		ctx := context.Background()
		model := map[id.PrimaryAddress]id.SecondaryAddress{}

		rounds := rapid.IntRange(0, 6).Draw(t, "rounds")
		for r := 0; r < rounds; r++ {
			caller := rapid.SampledFrom(callerPool).Draw(t, "caller")
			batch := batchGen().Draw(t, "batch")
			_, err := svc.Mint(ctx, caller, batch)
			require.NoError(t, err)
			model[caller] = batch[len(batch)-1].SecondaryAddress
		}

		primary := rapid.SampledFrom(callerPool).Draw(t, "primary")
		var claimed id.SecondaryAddress
		if recorded, ok := model[primary]; ok && rapid.Bool().Draw(t, "useRecorded") {
			claimed = recorded
		} else {
			claimed = id.SecondaryAddress(secondaryGen().Draw(t, "claimed"))
		}

		got, err := svc.CheckAliasAddress(ctx, primary, claimed)
		recorded, minted := model[primary]
		switch {
		case !minted:
			assert.True(t, IsLookupMiss(err), "expected lookup miss, got %v", err)
		case recorded == claimed:
			require.NoError(t, err)
			assert.Equal(t, claimed, got)
		default:
			assert.True(t, IsVerificationMismatch(err), "expected mismatch, got %v", err)
			assert.Empty(t, got)
		}
	})
}

// A batch denied on any claim leaves every structure exactly as it was.
func TestProperty_FailedMintLeavesStoreUnchanged(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		gate := &denyNth{}
		svc, st := newPropertyService(t, WithMintAuthorizer(gate))

		for _, caller := range rapid.SliceOfN(rapid.SampledFrom(callerPool), 0, 4).Draw(t, "seed") {
			_, err := svc.Mint(ctx, caller, batchGen().Draw(t, "seedBatch"))
			require.NoError(t, err)
		}
		before := st.Snapshot()

		batch := batchGen().Draw(t, "batch")
		gate.seen = 0
		gate.n = rapid.IntRange(1, len(batch)).Draw(t, "deniedAt")

		receipts, err := svc.Mint(ctx, rapid.SampledFrom(callerPool).Draw(t, "caller"), batch)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden), "got %v", err)
		assert.Nil(t, receipts)
		assert.Equal(t, before, st.Snapshot())
	})
}

// Ids issued over any sequence of mints are 1, 2, 3, ... with no gaps,
// including when failed batches are interleaved.
func TestProperty_TokenIDsAreGapless(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		gate := &denyNth{}
		svc, _ := newPropertyService(t, WithMintAuthorizer(gate))

		var issued []id.TokenID
		rounds := rapid.IntRange(1, 8).Draw(t, "rounds")
		for r := 0; r < rounds; r++ {
			batch := batchGen().Draw(t, "batch")
			gate.seen = 0
			gate.n = 0
			if rapid.Bool().Draw(t, "deny") {
				gate.n = rapid.IntRange(1, len(batch)).Draw(t, "deniedAt")
			}
			receipts, err := svc.Mint(ctx, rapid.SampledFrom(callerPool).Draw(t, "caller"), batch)
			if gate.n > 0 {
				require.Error(t, err)
				continue
			}
			require.NoError(t, err)
			for _, rc := range receipts {
				issued = append(issued, rc.TokenID)
			}
		}
		for i, tid := range issued {
			assert.Equal(t, id.TokenID(i+1), tid)
		}
	})
}

func TestScenario_TwoCallersAndVerification(t *testing.T) {
	ctx := context.Background()
	svc, st := newPropertyService(t)
	const neverMinted = id.PrimaryAddress("KT1ACTjebZPDFCvEbDHfiim4go22Dc6M5ARh")

	testutil.Given(t, "an empty registry", func(t *testing.T) {
		testutil.When(t, "A mints 0x01 and then B mints 0x02", func(t *testing.T) {
			receipts, err := svc.Mint(ctx, callerA, claims("0x01"))
			require.NoError(t, err)
			assert.Equal(t, id.TokenID(1), receipts[0].TokenID)

			receipts, err = svc.Mint(ctx, callerB, claims("0x02"))
			require.NoError(t, err)
			assert.Equal(t, id.TokenID(2), receipts[0].TokenID)

			testutil.Then(t, "owners and aliases are recorded", func(t *testing.T) {
				snap := st.Snapshot()
				assert.Equal(t, callerA, snap.Owners[1])
				assert.Equal(t, callerB, snap.Owners[2])
				assert.Equal(t, id.SecondaryAddress("0x01"), snap.Aliases[callerA])
				assert.Equal(t, id.SecondaryAddress("0x02"), snap.Aliases[callerB])
			})

			testutil.Then(t, "A verifies as 0x01 only", func(t *testing.T) {
				got, err := svc.CheckAliasAddress(ctx, callerA, "0x01")
				require.NoError(t, err)
				assert.Equal(t, id.SecondaryAddress("0x01"), got)

				_, err = svc.CheckAliasAddress(ctx, callerA, "0x02")
				assert.True(t, IsVerificationMismatch(err))
			})

			testutil.Then(t, "an address that never minted is a lookup miss", func(t *testing.T) {
				_, err := svc.CheckAliasAddress(ctx, neverMinted, "0x00")
				assert.True(t, IsLookupMiss(err))
			})
		})
	})
}
