package diag

// Code identifies the class of a reported diagnostic. The catalogue is
// small and flat: the generator has exactly one failure mode per
// vsgen.ErrorKind (spec.md §7), plus the CLI's own I/O and
// configuration failures.
type Code uint16

const (
	UnknownCode Code = 0

	// GenUnsupportedConstruct mirrors vsgen.UnsupportedConstruct.
	GenUnsupportedConstruct Code = 1001
	// GenInvalidLvalue mirrors vsgen.InvalidLvalue.
	GenInvalidLvalue Code = 1002
	// GenRegistryShape mirrors vsgen.RegistryShape.
	GenRegistryShape Code = 1003

	// CLIConfig reports a malformed or missing job configuration.
	CLIConfig Code = 2001
	// CLIFixture reports a fixture that failed to load or decode.
	CLIFixture Code = 2002
	// CLIWrite reports a failure writing the generated artifact.
	CLIWrite Code = 2003
)

func (c Code) String() string {
	switch c {
	case GenUnsupportedConstruct:
		return "gen-unsupported-construct"
	case GenInvalidLvalue:
		return "gen-invalid-lvalue"
	case GenRegistryShape:
		return "gen-registry-shape"
	case CLIConfig:
		return "cli-config"
	case CLIFixture:
		return "cli-fixture"
	case CLIWrite:
		return "cli-write"
	default:
		return "unknown"
	}
}
