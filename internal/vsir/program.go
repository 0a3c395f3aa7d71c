package vsir

// Program is the generator's first input: the global scope enumerating
// declarations in deterministic enumeration order (spec.md §5 relies on
// this determinism for reproducible output).
type Program struct {
	Decls []Decl
}

// JobConfig is the generator's second input (spec.md §6).
type JobConfig struct {
	FileName      string `toml:"file_name"`
	MainClassName string `toml:"main_class_name"`
}
