package preprocessing

import (
	"math/rand/v2"
)

// stochastic は乱数を使う変換器に共通の乱数源を保持する
type stochastic struct {
	// RandomState は再現可能な乱数のためのシード。nilの場合は非決定的
	RandomState *int64

	src rand.Source
	rng *rand.Rand
}

// Option は確率的な変換器を設定する関数
type Option func(*stochastic)

// WithRandomState は乱数のシードを設定する。
// 同じシード・同じ入力からは同じ出力が得られる
func WithRandomState(seed int64) Option {
	return func(s *stochastic) {
		s.RandomState = &seed
		s.src = rand.NewPCG(uint64(seed), uint64(seed))
	}
}

// WithSource は呼び出し側が用意した乱数源を使う
func WithSource(src rand.Source) Option {
	return func(s *stochastic) {
		s.RandomState = nil
		s.src = src
	}
}

func (s *stochastic) apply(opts []Option) {
	for _, opt := range opts {
		opt(s)
	}
	if s.src == nil {
		// プロセス全体の乱数生成器からシードを取る（再現性なし）
		s.src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	s.rng = rand.New(s.src)
}

// seedParam はGetParams用にシードを返す。未設定の場合はnil
func (s *stochastic) seedParam() interface{} {
	if s.RandomState == nil {
		return nil
	}
	return *s.RandomState
}
