package backfill_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/backfill"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/permission"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/repository"
	"github.com/christoferrrnewtech/dentpal-api/pkg/logger"
)

// numbersJob registros "r000".."rNNN"; los múltiplos de 3 ya están migrados y el 7 falla.
type numbersJob struct {
	ids       []string
	commits   [][]string
	scanLimit []int
	commitErr error
}

func newNumbersJob(n int) *numbersJob {
	j := &numbersJob{}
	for i := 0; i < n; i++ {
		j.ids = append(j.ids, fmt.Sprintf("r%03d", i))
	}
	return j
}

func (j *numbersJob) Name() string      { return "numbers" }
func (j *numbersJob) ID(s string) string { return s }

func (j *numbersJob) Scan(_ context.Context, afterID string, limit int) ([]string, error) {
	j.scanLimit = append(j.scanLimit, limit)
	start := sort.SearchStrings(j.ids, afterID)
	if start < len(j.ids) && j.ids[start] == afterID {
		start++
	}
	end := start + limit
	if end > len(j.ids) {
		end = len(j.ids)
	}
	return j.ids[start:end], nil
}

func (j *numbersJob) Transform(s string) (string, bool, error) {
	var n int
	_, _ = fmt.Sscanf(s, "r%d", &n)
	switch {
	case n == 7:
		return s, false, errors.New("documento corrupto")
	case n%3 == 0:
		return s, false, nil
	}
	return s + "!", true, nil
}

func (j *numbersJob) Commit(_ context.Context, items []string) error {
	if j.commitErr != nil {
		return j.commitErr
	}
	j.commits = append(j.commits, items)
	return nil
}

func TestRunner_CuentaYConfirmaPorLotes(t *testing.T) {
	job := newNumbersJob(10)
	stats, err := backfill.NewRunner[string](job, backfill.Options{BatchSize: 4}, logger.Nop()).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, stats.Scanned)
	assert.Equal(t, 4, stats.Skipped) // 0, 3, 6, 9
	assert.Equal(t, 1, stats.Failed)  // 7
	assert.Equal(t, 5, stats.Updated)
	assert.Equal(t, 3, stats.Batches)
	assert.Equal(t, [][]string{{"r001!", "r002!"}, {"r004!", "r005!"}, {"r008!"}}, job.commits)
	for _, l := range job.scanLimit {
		assert.Equal(t, 4, l)
	}
}

func TestRunner_DryRunNoEscribe(t *testing.T) {
	job := newNumbersJob(10)
	stats, err := backfill.NewRunner[string](job, backfill.Options{BatchSize: 400, DryRun: true}, logger.Nop()).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Updated)
	assert.Empty(t, job.commits)
	assert.Equal(t, 1, stats.Batches)
}

func TestRunner_FalloDeCommitAborta(t *testing.T) {
	job := newNumbersJob(10)
	job.commitErr = errors.New("conexión perdida")
	_, err := backfill.NewRunner[string](job, backfill.Options{BatchSize: 4}, logger.Nop()).Run(context.Background())
	assert.ErrorIs(t, err, job.commitErr)
}

func TestRunner_BatchSizeInvalido(t *testing.T) {
	_, err := backfill.NewRunner[string](newNumbersJob(1), backfill.Options{}, logger.Nop()).Run(context.Background())
	assert.Error(t, err)
}

func TestPermissionsJob_NoCambiaLosPermisosEfectivos(t *testing.T) {
	parent := &entity.User{ID: "p", Role: entity.RoleSeller, Permissions: permission.Map{permission.Reports: false}}
	users := []*entity.User{
		parent,
		{ID: "a", Role: entity.RoleAdmin},
		{ID: "c", Role: entity.RoleSeller, IsSubAccount: true, ParentID: "p",
			Permissions: permission.Map{permission.Bookings: true, permission.Users: true}},
	}
	job := backfill.NewPermissionsJob(nil, nil)

	for _, u := range users {
		out, changed, err := job.Transform(u)
		require.NoError(t, err)
		assert.True(t, changed, u.ID)
		assert.Len(t, out.Permissions, len(permission.All()), u.ID)

		before := effective(u, parent.Permissions)
		after := effective(out, parent.Permissions)
		assert.Equal(t, before, after, u.ID)
	}

	out, _, _ := job.Transform(users[2])
	assert.False(t, out.Permissions[permission.Users])
	again, changed, err := job.Transform(out)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, out.Permissions, again.Permissions)
}

func effective(u *entity.User, parent permission.Map) permission.Map {
	return permission.Resolve(permission.Input{
		Role:        u.Role,
		Stored:      u.Permissions,
		SubAccount:  u.IsSubAccount,
		Parent:      parent,
		ParentFound: true,
	})
}

func TestOrdersJob_TransformCanonicaliza(t *testing.T) {
	job := backfill.NewOrdersJob(nil, nil)
	out, changed, err := job.Transform(repository.RawDocument{ID: "o-1", Data: map[string]any{
		"seller_id": "s-1", "paymentStatus": "paid", "totalAmount": 100.0,
	}})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "o-1", out.ID)
	assert.Equal(t, "s-1", out.Data["sellerId"])

	_, _, err = job.Transform(repository.RawDocument{ID: "o-2"})
	assert.Error(t, err)
}
