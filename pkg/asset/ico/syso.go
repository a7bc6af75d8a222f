package ico

import (
	"fmt"
	"io"
	"slices"

	"github.com/hashicorp/go-hclog"
	"github.com/tc-hib/winres"
)

// IconResourceName is the icon group Windows Explorer shows for the
// executable.
const IconResourceName = "APP"

// Archs lists the GOARCH values WriteSyso can target.
var Archs = []string{"386", "amd64", "arm", "arm64"}

// WriteSyso writes data as a COFF object holding an icon group resource.
// Placed next to a main package as rsrc_windows_<arch>.syso, the Go linker
// links it in and the executable gets the icon.
func WriteSyso(w io.Writer, data []byte, arch string, logger hclog.Logger) error {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	if !slices.Contains(Archs, arch) {
		return fmt.Errorf("unsupported architecture %q (have %v)", arch, Archs)
	}
	info, err := Validate(data)
	if err != nil {
		return err
	}

	rs := &winres.ResourceSet{}
	if err := rs.SetIcon(winres.Name(IconResourceName), info.Icon); err != nil {
		return fmt.Errorf("failed to set icon resource: %w", err)
	}

	logger.Debug("Writing icon resource object",
		"arch", arch,
		"images", len(info.Images),
		"resource_name", IconResourceName)

	if err := rs.WriteObject(w, winres.Arch(arch)); err != nil {
		return fmt.Errorf("failed to write resource object: %w", err)
	}
	return nil
}
