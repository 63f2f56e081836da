package repokit

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeTx struct {
	execs     []string
	committed bool
}

func (f *fakeTx) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	f.execs = append(f.execs, sql)
	return nil, nil
}
func (f *fakeTx) QueryRow(context.Context, string, ...any) Row { return nil }
func (f *fakeTx) Tx(ctx context.Context, fn func(Queryer) error) error {
	if err := fn(f); err != nil {
		return err
	}
	f.committed = true
	return nil
}

type counter struct{ q Queryer }

func TestMustBind(t *testing.T) {
	tx := &fakeTx{}
	b := BindFunc[counter](func(q Queryer) counter { return counter{q: q} })
	if got := MustBind[counter](b, tx); got.q != tx {
		t.Fatalf("bound to wrong queryer")
	}

	defer func() {
		v := recover()
		if v == nil || !strings.Contains(v.(string), "nil Queryer") {
			t.Fatalf("expected nil Queryer panic, got %v", v)
		}
	}()
	MustBind[counter](b, nil)
}

func TestWithTx(t *testing.T) {
	tx := &fakeTx{}
	err := WithTx(context.Background(), tx, func(q Queryer) error {
		_, err := q.Exec(context.Background(), "create table if not exists assessments ()")
		return err
	})
	if err != nil || !tx.committed || len(tx.execs) != 1 {
		t.Fatalf("err=%v committed=%v execs=%v", err, tx.committed, tx.execs)
	}

	boom := errors.New("boom")
	tx = &fakeTx{}
	if err := WithTx(context.Background(), tx, func(Queryer) error { return boom }); !errors.Is(err, boom) || tx.committed {
		t.Fatalf("rollback path: err=%v committed=%v", err, tx.committed)
	}
}
