package escorex

const buildVersion = "0.1.0"

// Version returns the version of this transport library.
func Version() string {
	return buildVersion
}
