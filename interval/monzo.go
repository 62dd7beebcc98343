package interval

import (
	"math"
	"math/big"
	"strings"

	"golang.org/x/exp/constraints"
)

// Monzo is an exact interval value: rational exponents over the ascending
// primes, a rational factor the basis could not absorb, and a cents offset for
// anything irrational. Operations never modify their receiver.
type Monzo struct {
	Vector   []*big.Rat
	Residual *big.Rat
	Cents    float64
}

// Primes returns the first n primes.
func Primes(n int) []int64 {
	primes := make([]int64, 0, n)
	for candidate := int64(2); len(primes) < n; candidate++ {
		isPrime := true
		for _, p := range primes {
			if p*p > candidate {
				break
			}
			if candidate%p == 0 {
				isPrime = false
				break
			}
		}
		if isPrime {
			primes = append(primes, candidate)
		}
	}
	return primes
}

// Unison returns the zero monzo with the given number of components.
func Unison(components int) Monzo {
	v := make([]*big.Rat, components)
	for i := range v {
		v[i] = new(big.Rat)
	}
	return Monzo{Vector: v, Residual: big.NewRat(1, 1)}
}

// FactorRatio splits a positive ratio over the first components primes.
func FactorRatio(r *big.Rat, components int) Monzo {
	m := Unison(components)
	num := new(big.Int).Set(r.Num())
	den := new(big.Int).Set(r.Denom())

	q, rem := new(big.Int), new(big.Int)
	for i, p := range Primes(components) {
		bp := big.NewInt(p)
		var exponent int64
		for {
			q.QuoRem(num, bp, rem)
			if rem.Sign() != 0 {
				break
			}
			num.Set(q)
			exponent++
		}
		for {
			q.QuoRem(den, bp, rem)
			if rem.Sign() != 0 {
				break
			}
			den.Set(q)
			exponent--
		}
		m.Vector[i].SetInt64(exponent)
	}
	m.Residual.SetFrac(num, den)
	return m
}

func (m Monzo) TotalCents() float64 {
	octaves := 0.0
	for i, p := range Primes(len(m.Vector)) {
		if m.Vector[i].Sign() == 0 {
			continue
		}
		e, _ := m.Vector[i].Float64()
		octaves += e * math.Log2(float64(p))
	}
	if m.Residual != nil {
		octaves += log2Rat(m.Residual)
	}
	return 1200*octaves + m.Cents
}

// Add stacks two monzos. The result is as long as the longer operand.
func (m Monzo) Add(o Monzo) Monzo {
	res := Unison(max(len(m.Vector), len(o.Vector)))
	for i := range res.Vector {
		if i < len(m.Vector) {
			res.Vector[i].Add(res.Vector[i], m.Vector[i])
		}
		if i < len(o.Vector) {
			res.Vector[i].Add(res.Vector[i], o.Vector[i])
		}
	}
	res.Residual.Mul(m.residual(), o.residual())
	res.Cents = m.Cents + o.Cents
	return res
}

func (m Monzo) Neg() Monzo {
	res := Unison(len(m.Vector))
	for i, e := range m.Vector {
		res.Vector[i].Neg(e)
	}
	res.Residual.Inv(m.residual())
	res.Cents = -m.Cents
	return res
}

// Scale multiplies every exponent and the cents offset by f. The residual
// cannot be raised to a rational power exactly, so its size moves into Cents.
func (m Monzo) Scale(f *big.Rat) Monzo {
	res := Unison(len(m.Vector))
	for i, e := range m.Vector {
		res.Vector[i].Mul(e, f)
	}
	ff, _ := f.Float64()
	res.Cents = m.Cents * ff
	if r := m.residual(); !isOne(r) {
		res.Cents += 1200 * log2Rat(r) * ff
	}
	return res
}

// Ratio returns the monzo as a fraction when every exponent is an integer and
// there is no cents offset.
func (m Monzo) Ratio() (*big.Rat, bool) {
	if m.Cents != 0 {
		return nil, false
	}
	res := new(big.Rat).Set(m.residual())
	for i, p := range Primes(len(m.Vector)) {
		e := m.Vector[i]
		if !e.IsInt() {
			return nil, false
		}
		if e.Sign() == 0 {
			continue
		}
		power := new(big.Int).Exp(big.NewInt(p), new(big.Int).Abs(e.Num()), nil)
		f := new(big.Rat).SetInt(power)
		if e.Sign() < 0 {
			f.Inv(f)
		}
		res.Mul(res, f)
	}
	return res, true
}

// String writes the vector in ket notation with trailing zeros trimmed, ex: "[-1 1>".
func (m Monzo) String() string {
	last := len(m.Vector) - 1
	for last >= 0 && m.Vector[last].Sign() == 0 {
		last--
	}
	parts := make([]string, 0, last+1)
	for _, e := range m.Vector[:last+1] {
		parts = append(parts, e.RatString())
	}
	return "[" + strings.Join(parts, " ") + ">"
}

func (m Monzo) residual() *big.Rat {
	if m.Residual == nil {
		return big.NewRat(1, 1)
	}
	return m.Residual
}

func isOne(r *big.Rat) bool {
	return r.IsInt() && r.Num().IsInt64() && r.Num().Int64() == 1
}

func log2Rat(r *big.Rat) float64 {
	return log2Int(r.Num()) - log2Int(r.Denom())
}

// log2Int keeps the top 53 bits so arbitrarily large integers stay finite.
func log2Int(x *big.Int) float64 {
	n := x.BitLen()
	if n <= 53 {
		f, _ := new(big.Float).SetInt(x).Float64()
		return math.Log2(f)
	}
	shift := uint(n - 53)
	top := new(big.Int).Rsh(x, shift)
	return math.Log2(float64(top.Int64())) + float64(shift)
}

func gcd[T constraints.Integer](a, b T) T {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

// mulInt64 multiplies a and b, reporting false on overflow.
func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return c, true
}
