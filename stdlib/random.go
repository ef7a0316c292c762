package stdlib

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/wfl-lang/wfl/interp"
	"github.com/wfl-lang/wfl/value"
)

// rngState is the PRNG shared by every random_* function that one
// registerRandom call installs, so each interpreter has its own (the Rust
// original keeps a thread_local RefCell<StdRng>): random_seed replaces it
// wholesale for reproducible runs.
type rngState struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *rngState) reseed(seed uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (s *rngState) float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *rngState) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// registerRandom wires the Rust original's src/stdlib/random.rs
// surface over math/rand/v2 (a justified standard-library component:
// the pack has no seeded-PRNG dependency), plus generate_uuid via
// google/uuid, already used for handle IDs elsewhere in the interpreter.
func registerRandom(in *interp.Interpreter, seed uint64) {
	state := &rngState{}
	state.reseed(seed)

	randomFloat := func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("random", args, 0); err != nil {
			return nil, err
		}
		return value.Number(state.float64()), nil
	}
	in.RegisterNative("random", randomFloat)
	in.RegisterNative("random_float", randomFloat)
	in.RegisterNative("random_between", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("random_between", args, 2); err != nil {
			return nil, err
		}
		lo, err := argNumber("random_between", args, 0)
		if err != nil {
			return nil, err
		}
		hi, err := argNumber("random_between", args, 1)
		if err != nil {
			return nil, err
		}
		if lo > hi {
			return nil, fmt.Errorf("random_between: min (%v) cannot be greater than max (%v)", lo, hi)
		}
		return value.Number(float64(lo) + state.float64()*float64(hi-lo)), nil
	})
	in.RegisterNative("random_int", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("random_int", args, 2); err != nil {
			return nil, err
		}
		lo, err := argNumber("random_int", args, 0)
		if err != nil {
			return nil, err
		}
		hi, err := argNumber("random_int", args, 1)
		if err != nil {
			return nil, err
		}
		if lo > hi {
			return nil, fmt.Errorf("random_int: min (%v) cannot be greater than max (%v)", lo, hi)
		}
		span := int(hi) - int(lo) + 1
		return value.Number(int(lo) + state.intn(span)), nil
	})
	in.RegisterNative("random_boolean", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("random_boolean", args, 0); err != nil {
			return nil, err
		}
		return value.Boolean(state.intn(2) == 1), nil
	})
	randomFrom := func(args []value.Value) (value.Value, error) {
		l, err := unaryList("random_from", args)
		if err != nil {
			return nil, err
		}
		if len(l.Elements) == 0 {
			return nil, fmt.Errorf("random_from: cannot select from empty list")
		}
		return l.Elements[state.intn(len(l.Elements))], nil
	}
	in.RegisterNative("random_from", randomFrom)
	in.RegisterNative("random_from_list", randomFrom)
	in.RegisterNative("random_pick", func(args []value.Value) (value.Value, error) {
		l, err := unaryList("random_pick", args)
		if err != nil {
			return nil, err
		}
		if len(l.Elements) == 0 {
			return nil, fmt.Errorf("random_pick: cannot select from empty list")
		}
		i := state.intn(len(l.Elements))
		picked := l.Elements[i]
		l.Elements = append(l.Elements[:i], l.Elements[i+1:]...)
		return picked, nil
	})
	in.RegisterNative("random_seed", func(args []value.Value) (value.Value, error) {
		n, err := unaryNumber("random_seed", args)
		if err != nil {
			return nil, err
		}
		state.reseed(uint64(n))
		return value.NothingValue, nil
	})
	in.RegisterNative("generate_uuid", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("generate_uuid", args, 0); err != nil {
			return nil, err
		}
		return value.Text(uuid.NewString()), nil
	})
}
