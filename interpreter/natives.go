package interpreter

// defineNatives seeds the global scope with the built-in functions.
func defineNatives(globals *Environment) {
	globals.Define("clock", &NativeFunction{
		Name:   "clock",
		Params: 0,
		Fn: func(in *Interpreter, _ []Value) (Value, error) {
			return in.clock().Seconds(), nil
		},
	})
}
