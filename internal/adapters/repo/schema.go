package repo

// manifestDTO is the on-disk YAML shape of one staged package manifest.
type manifestDTO struct {
	Name    string                  `yaml:"name"`
	Version string                  `yaml:"version"`
	Depends *formulaDTO[pkgAtomDTO] `yaml:"depends"`
	DepOpts *formulaDTO[pkgAtomDTO] `yaml:"depopts"`
	OS      *formulaDTO[osTestDTO]  `yaml:"os"`
	DepExts []depExtDTO             `yaml:"depexts"`
	Build   [][]string              `yaml:"build"`
	Install [][]string              `yaml:"install"`
}

// formulaDTO is the YAML shape of a dependency formula. Exactly one of
// the fields is set per node; an all-empty node is the empty formula.
type formulaDTO[A any] struct {
	Atom  *A              `yaml:"atom"`
	Block *formulaDTO[A]  `yaml:"block"`
	And   []formulaDTO[A] `yaml:"and"`
	Or    []formulaDTO[A] `yaml:"or"`
}

type pkgAtomDTO struct {
	Name       string   `yaml:"name"`
	Flags      []string `yaml:"flags"`
	Constraint string   `yaml:"constraint"`
}

type osTestDTO struct {
	Name   string `yaml:"name"`
	Negate bool   `yaml:"negate"`
}

type envTestDTO struct {
	Var    string `yaml:"var"`
	Value  string `yaml:"value"`
	Negate bool   `yaml:"negate"`
}

type depExtDTO struct {
	Names  []string                `yaml:"names"`
	Filter *formulaDTO[envTestDTO] `yaml:"filter"`
}

// urlDTO is the on-disk YAML shape of a staged url file.
type urlDTO struct {
	Backend   string   `yaml:"backend"`
	Address   string   `yaml:"address"`
	Fragment  string   `yaml:"fragment"`
	Checksums []string `yaml:"checksums"`
}
