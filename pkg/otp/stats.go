package otp

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultSampleCount は鍵分布の既定サンプル数
	DefaultSampleCount = 5000
	// DefaultDistributionBits は鍵分布で生成する鍵の既定ビット長
	DefaultDistributionBits = 4
	// DefaultLatencyBits は処理時間計測で使う鍵の既定ビット長
	DefaultLatencyBits = 128
	// DefaultLatencySample は処理時間計測の既定平文 (16文字 = 128ビット)
	DefaultLatencySample = "abcdefghijklmnop"
	// DefaultLatencyTrials は処理時間計測の既定試行回数
	DefaultLatencyTrials = 1000
)

// FrequencyTable は鍵のビットパターンごとの出現回数です
type FrequencyTable map[string]int

// Total は出現回数の合計を返します
func (ft FrequencyTable) Total() int {
	total := 0
	for _, c := range ft {
		total += c
	}
	return total
}

// Keys はビットパターンを昇順で返します
func (ft FrequencyTable) Keys() []string {
	return slices.Sorted(maps.Keys(ft))
}

// Merge は other の出現回数を加算します
func (ft FrequencyTable) Merge(other FrequencyTable) {
	for k, c := range other {
		ft[k] += c
	}
}

// ChiSquare は 2^keyBits 通りの一様分布に対するカイ二乗統計量を返します。
// 出現しなかったパターンも期待値との差として数えます。
func (ft FrequencyTable) ChiSquare(keyBits int) float64 {
	total := ft.Total()
	if total == 0 || keyBits < 0 || keyBits > 30 {
		return 0
	}
	buckets := 1 << keyBits
	expected := float64(total) / float64(buckets)

	observed := 0
	sum := 0.0
	for _, c := range ft {
		d := float64(c) - expected
		sum += d * d / expected
		observed++
	}
	// 未出現パターンの寄与 ((0-E)^2/E = E)
	sum += float64(buckets-observed) * expected
	return sum
}

// String は {0000=312, 0001=298} 形式で返します
func (ft FrequencyTable) String() string {
	var builder strings.Builder
	builder.WriteByte('{')
	for i, k := range ft.Keys() {
		if i > 0 {
			builder.WriteString(", ")
		}
		fmt.Fprintf(&builder, "%s=%d", k, ft[k])
	}
	builder.WriteByte('}')
	return builder.String()
}

// KeyDistribution は keyBits ビットの鍵を sampleCount 回生成し、パターンごとに集計します。
func KeyDistribution(gen *KeyGenerator, sampleCount, keyBits int) (FrequencyTable, error) {
	if sampleCount < 0 {
		return nil, fmt.Errorf("%w: サンプル数は0以上である必要があります: %d", ErrInvalidArgument, sampleCount)
	}
	if keyBits < 0 {
		return nil, fmt.Errorf("%w: 鍵のビット長は0以上である必要があります: %d", ErrInvalidArgument, keyBits)
	}

	table := make(FrequencyTable)
	for i := 0; i < sampleCount; i++ {
		key, err := gen.Generate(keyBits)
		if err != nil {
			return nil, err
		}
		table[key]++
	}
	return table, nil
}

// distributionJob はワーカーに割り当てるサンプル数
type distributionJob struct {
	worker  int
	samples int
}

// distributionResult はワーカーごとの集計結果
type distributionResult struct {
	table FrequencyTable
	err   error
}

// KeyDistributionParallel は KeyDistribution を複数ワーカーで実行します。
// newSource はワーカーごとに呼ばれ、各ワーカーは自分専用の RandomSource を使います。
// 各ワーカーの集計結果は最後に合算します。
func KeyDistributionParallel(newSource func(worker int) RandomSource, sampleCount, keyBits, numWorkers int) (FrequencyTable, error) {
	if sampleCount < 0 {
		return nil, fmt.Errorf("%w: サンプル数は0以上である必要があります: %d", ErrInvalidArgument, sampleCount)
	}
	if keyBits < 0 {
		return nil, fmt.Errorf("%w: 鍵のビット長は0以上である必要があります: %d", ErrInvalidArgument, keyBits)
	}
	if numWorkers <= 0 {
		numWorkers = 4 // デフォルトのワーカー数
	}
	if numWorkers > sampleCount && sampleCount > 0 {
		numWorkers = sampleCount
	}

	jobs := make(chan distributionJob, numWorkers)
	results := make(chan distributionResult, numWorkers)
	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				table, err := KeyDistribution(NewKeyGenerator(newSource(job.worker)), job.samples, keyBits)
				results <- distributionResult{table: table, err: err}
			}
		}()
	}

	// サンプル数をワーカー間で均等に分配
	per, rest := sampleCount/numWorkers, sampleCount%numWorkers
	for i := 0; i < numWorkers; i++ {
		n := per
		if i < rest {
			n++
		}
		jobs <- distributionJob{worker: i, samples: n}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	merged := make(FrequencyTable)
	var firstErr error
	for result := range results {
		if result.err != nil {
			if firstErr == nil {
				firstErr = result.err
			}
			continue
		}
		merged.Merge(result.table)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return merged, nil
}

// MeasureTransformLatency は keyBits ビットの鍵で sampleText を1回だけ変換し、その所要時間を返します。
// 1回の計測はばらつきが大きいため、統計には MeasureTransformLatencyTrials を使ってください。
func MeasureTransformLatency(gen *KeyGenerator, keyBits int, sampleText string) (time.Duration, error) {
	key, data, err := prepareLatencyInput(gen, keyBits, sampleText)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	if _, err := Transform(key, data); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// LatencyReport は複数回計測した処理時間の要約です
type LatencyReport struct {
	Trials int
	Min    time.Duration
	Max    time.Duration
	Mean   time.Duration
	Median time.Duration
	P90    time.Duration
	P99    time.Duration
}

// String は計測結果をミリ秒単位で整形します
func (r LatencyReport) String() string {
	return fmt.Sprintf("trials=%d min=%.4fms median=%.4fms mean=%.4fms p90=%.4fms p99=%.4fms max=%.4fms",
		r.Trials, ms(r.Min), ms(r.Median), ms(r.Mean), ms(r.P90), ms(r.P99), ms(r.Max))
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// MeasureTransformLatencyTrials は同じ鍵と平文で Transform を trials 回実行し、処理時間の分布を返します。
func MeasureTransformLatencyTrials(gen *KeyGenerator, keyBits int, sampleText string, trials int) (LatencyReport, error) {
	if trials <= 0 {
		return LatencyReport{}, fmt.Errorf("%w: 試行回数は1以上である必要があります: %d", ErrInvalidArgument, trials)
	}
	key, data, err := prepareLatencyInput(gen, keyBits, sampleText)
	if err != nil {
		return LatencyReport{}, err
	}

	samples := make([]time.Duration, trials)
	for i := range samples {
		start := time.Now()
		if _, err := Transform(key, data); err != nil {
			return LatencyReport{}, err
		}
		samples[i] = time.Since(start)
	}
	return summarize(samples), nil
}

// prepareLatencyInput は計測用の鍵と平文ビット列を用意します
func prepareLatencyInput(gen *KeyGenerator, keyBits int, sampleText string) (string, string, error) {
	key, err := gen.Generate(keyBits)
	if err != nil {
		return "", "", err
	}
	data, err := Encode(sampleText)
	if err != nil {
		return "", "", err
	}
	if len(key) != len(data) {
		return "", "", fmt.Errorf("%w: 鍵 %d ビット, 平文 %d ビット", ErrLengthMismatch, len(key), len(data))
	}
	return key, data, nil
}

// summarize は計測値を昇順に並べて要約します。samples は1件以上であること。
func summarize(samples []time.Duration) LatencyReport {
	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	var sum time.Duration
	for _, d := range sorted {
		sum += d
	}

	return LatencyReport{
		Trials: len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   sum / time.Duration(len(sorted)),
		Median: percentile(sorted, 50),
		P90:    percentile(sorted, 90),
		P99:    percentile(sorted, 99),
	}
}

// percentile は nearest-rank 法で p パーセンタイルを返します
func percentile(sorted []time.Duration, p int) time.Duration {
	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}
