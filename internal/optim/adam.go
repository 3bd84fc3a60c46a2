package optim

import (
	"math"

	"github.com/born-ml/mlp/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	target  Target
	lr      float64
	beta1   float64
	beta2   float64
	epsilon float64
	t       int              // Timestep for bias correction
	m       []*tensor.Tensor // First moment estimates
	v       []*tensor.Tensor // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR      float64 // Learning rate (default: 0.001)
	Beta1   float64 // First moment decay (default: 0.9)
	Beta2   float64 // Second moment decay (default: 0.999)
	Epsilon float64 // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer for target.
func NewAdam(target Target, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Beta1 == 0 {
		config.Beta1 = 0.9
	}
	if config.Beta2 == 0 {
		config.Beta2 = 0.999
	}
	if config.Epsilon == 0 {
		config.Epsilon = 1e-8
	}
	return &Adam{
		target:  target,
		lr:      config.LR,
		beta1:   config.Beta1,
		beta2:   config.Beta2,
		epsilon: config.Epsilon,
	}
}

// Step performs a single optimization step.
//
// The target and the optimizer state are left untouched when grads do not
// match the target's parameters.
func (a *Adam) Step(grads []*tensor.Tensor) error {
	params := a.target.Params()
	if err := checkGrads(params, grads); err != nil {
		return err
	}
	if a.m == nil {
		a.m = zerosLike(params)
		a.v = zerosLike(params)
	}

	a.t++
	biasCorrection1 := 1 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1 - math.Pow(a.beta2, float64(a.t))

	updated := make([]*tensor.Tensor, len(params))
	for i, p := range params {
		g, m, v := grads[i].Data(), a.m[i].Data(), a.v[i].Data()
		next := p.Clone()
		data := next.Data()
		for j := range data {
			m[j] = a.beta1*m[j] + (1-a.beta1)*g[j]
			v[j] = a.beta2*v[j] + (1-a.beta2)*g[j]*g[j]
			mHat := m[j] / biasCorrection1
			vHat := v[j] / biasCorrection2
			data[j] -= a.lr * mHat / (math.Sqrt(vHat) + a.epsilon)
		}
		updated[i] = next
	}
	return a.target.SetParams(updated)
}

// LR returns the current learning rate.
func (a *Adam) LR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float64) {
	a.lr = lr
}

// Timestep returns the number of steps taken.
func (a *Adam) Timestep() int {
	return a.t
}
