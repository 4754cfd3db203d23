package syncer

import "time"

// Result は1レルム×1設定単位の同期結果を表す。
type Result struct {
	Realm   string
	Unit    string
	Changed bool
	Err     error
}

// Report は同期1回分の結果を表す。
// あるレルム・設定単位の失敗は該当Resultに記録されるだけで、
// 他のレルムの処理には影響しない。
type Report struct {
	StartedAt  time.Time
	FinishedAt time.Time

	// Err はレルム列挙自体が失敗した場合のエラー
	Err error

	Results []Result
}

// Failures は失敗した結果のみを返す。
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// ChangedCount は変化が反映された結果の数を返す。
func (r *Report) ChangedCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Changed {
			n++
		}
	}
	return n
}

// FailedRealms は1つ以上の失敗があったレルム名の集合を返す。
func (r *Report) FailedRealms() map[string]bool {
	out := make(map[string]bool)
	for _, res := range r.Results {
		if res.Err != nil {
			out[res.Realm] = true
		}
	}
	return out
}
