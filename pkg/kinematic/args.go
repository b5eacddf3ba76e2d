package kinematic

import (
	"errors"
	"sort"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mitchellh/mapstructure"
)

type transformArgs struct {
	XYZ []float64 `mapstructure:"xyz"`
	RPY []float64 `mapstructure:"rpy"`
}

type limitArgs struct {
	Effort   float64  `mapstructure:"effort"`
	Velocity float64  `mapstructure:"velocity"`
	Lower    *float64 `mapstructure:"lower"`
	Upper    *float64 `mapstructure:"upper"`
}

type calibrationArgs struct {
	Rising  *float64 `mapstructure:"rising"`
	Falling *float64 `mapstructure:"falling"`
}

type dynamicsArgs struct {
	Damping  *float64 `mapstructure:"damping"`
	Friction *float64 `mapstructure:"friction"`
}

type mimicArgs struct {
	Joint      string   `mapstructure:"joint"`
	Multiplier *float64 `mapstructure:"multiplier"`
	Offset     *float64 `mapstructure:"offset"`
}

type safetyArgs struct {
	KVelocity      float64  `mapstructure:"k_velocity"`
	KPosition      *float64 `mapstructure:"k_position"`
	SoftLowerLimit *float64 `mapstructure:"soft_lower_limit"`
	SoftUpperLimit *float64 `mapstructure:"soft_upper_limit"`
}

var knownJointArgs = map[string]bool{
	"transform":         true,
	"axis":              true,
	"limit":             true,
	"calibration":       true,
	"dynamics":          true,
	"mimic":             true,
	"safety_controller": true,
}

// JointBuilderFromArgs creates a joint builder from loosely typed keyword
// arguments, as found in parsed documents. Unknown keys fail with
// *domain.UnknownArgumentError and values of the wrong shape with
// *domain.TypeConversionError, before any builder is returned.
func JointBuilderFromArgs(name string, jointType domain.JointType, args map[string]any) (*JointBuilder, error) {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !knownJointArgs[k] {
			return nil, &domain.UnknownArgumentError{Argument: k}
		}
	}

	b := NewJointBuilder(name, jointType)
	for _, k := range keys {
		v := args[k]
		if v == nil {
			continue
		}
		switch k {
		case "transform":
			t, err := toTransform(v)
			if err != nil {
				return nil, err
			}
			b.spec.transform = t
		case "axis":
			axis, err := toVec3(k, v)
			if err != nil {
				return nil, err
			}
			b.spec.axis = &axis
		case "limit":
			var la limitArgs
			if err := decodeStrict(k, "limit mapping", v, &la); err != nil {
				return nil, err
			}
			b.spec.limit = &domain.Limit{Effort: la.Effort, Velocity: la.Velocity, Lower: la.Lower, Upper: la.Upper}
		case "calibration":
			var ca calibrationArgs
			if err := decodeStrict(k, "calibration mapping", v, &ca); err != nil {
				return nil, err
			}
			b.spec.calibration = domain.Calibration{Rising: ca.Rising, Falling: ca.Falling}
		case "dynamics":
			var da dynamicsArgs
			if err := decodeStrict(k, "dynamics mapping", v, &da); err != nil {
				return nil, err
			}
			b.spec.dynamics = domain.Dynamics{Damping: da.Damping, Friction: da.Friction}
		case "mimic":
			var ma mimicArgs
			if err := decodeStrict(k, "mimic mapping", v, &ma); err != nil {
				return nil, err
			}
			b.spec.mimic = &domain.Mimic{Joint: ma.Joint, Multiplier: ma.Multiplier, Offset: ma.Offset}
		case "safety_controller":
			var sa safetyArgs
			if err := decodeStrict(k, "safety_controller mapping", v, &sa); err != nil {
				return nil, err
			}
			b.spec.safety = &domain.SafetyController{
				KVelocity:      sa.KVelocity,
				KPosition:      sa.KPosition,
				SoftLowerLimit: sa.SoftLowerLimit,
				SoftUpperLimit: sa.SoftUpperLimit,
			}
		}
	}
	return b, nil
}

// decodeStrict decodes v into out, reporting leftover keys as unknown
// arguments and any other mismatch as a conversion error on argument.
func decodeStrict(argument, expected string, v any, out any) error {
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata: &md,
		Result:   out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(v); err != nil {
		return &domain.TypeConversionError{Argument: argument, Expected: expected, Value: v}
	}
	if len(md.Unused) > 0 {
		sort.Strings(md.Unused)
		return &domain.UnknownArgumentError{Argument: argument + "." + md.Unused[0]}
	}
	return nil
}

func toTransform(v any) (domain.Transform, error) {
	if t, ok := v.(domain.Transform); ok {
		return t, nil
	}
	if t, ok := v.(*domain.Transform); ok && t != nil {
		return *t, nil
	}

	fail := &domain.TypeConversionError{Argument: "transform", Expected: "transform (mapping with xyz and rpy)", Value: v}
	var ta transformArgs
	if err := decodeStrict("transform", fail.Expected, v, &ta); err != nil {
		var unknown *domain.UnknownArgumentError
		if errors.As(err, &unknown) {
			return domain.Transform{}, fail
		}
		return domain.Transform{}, err
	}

	var t domain.Transform
	if ta.XYZ != nil {
		if len(ta.XYZ) != 3 {
			return domain.Transform{}, fail
		}
		t.Translation = mgl64.Vec3{ta.XYZ[0], ta.XYZ[1], ta.XYZ[2]}
	}
	if ta.RPY != nil {
		if len(ta.RPY) != 3 {
			return domain.Transform{}, fail
		}
		t.Rotation = mgl64.Vec3{ta.RPY[0], ta.RPY[1], ta.RPY[2]}
	}
	return t, nil
}

func toVec3(argument string, v any) (mgl64.Vec3, error) {
	if vec, ok := v.(mgl64.Vec3); ok {
		return vec, nil
	}
	var xs []float64
	if err := mapstructure.Decode(v, &xs); err != nil || len(xs) != 3 {
		return mgl64.Vec3{}, &domain.TypeConversionError{Argument: argument, Expected: "3-vector", Value: v}
	}
	return mgl64.Vec3{xs[0], xs[1], xs[2]}, nil
}
