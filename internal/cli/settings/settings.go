package settings

import (
	"fmt"

	"github.com/julianstephens/wellnest/internal/cli"
	"github.com/julianstephens/wellnest/internal/constants"
	"github.com/julianstephens/wellnest/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Name         *string  `help:"Your display name."`
	Timezone     *string  `help:"IANA timezone used for day boundaries, or Local."`
	StepLength   *float64 `help:"Step length in cm."`
	SensorDenied *bool    `help:"Record that step sensor access was denied."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Managers.Settings
	s := mgr.Get()

	if c.List {
		denied := ctx.Prefs.Namespace(constants.NamespaceSettings).GetBool(constants.SettingSensorDenied, false)
		fmt.Println("Current Settings:")
		fmt.Printf("  Name:          %s\n", s.UserName)
		fmt.Printf("  Timezone:      %s\n", s.Timezone)
		fmt.Printf("  Step Length:   %.0f cm\n", s.StepLengthCm)
		fmt.Printf("  Step Goal:     %d steps\n", ctx.Managers.Steps.Goal())
		fmt.Printf("  Water Goal:    %d ml\n", ctx.Managers.Hydration.Goal())
		fmt.Printf("  Sensor Denied: %v\n", denied)
		fmt.Println("\nReminders:")
		fmt.Printf("  %s\n", ctx.Scheduler().StatusText())
		return nil
	}

	updated := false
	if c.Name != nil {
		s.UserName = *c.Name
		updated = true
	}
	if c.Timezone != nil {
		if _, err := utils.LoadLocation(*c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", *c.Timezone, err)
		}
		s.Timezone = *c.Timezone
		updated = true
	}
	if c.StepLength != nil {
		s.StepLengthCm = *c.StepLength
		updated = true
	}
	if c.SensorDenied != nil {
		ns := ctx.Prefs.Namespace(constants.NamespaceSettings)
		if err := ns.PutBool(constants.SettingSensorDenied, *c.SensorDenied); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	if err := mgr.Save(s); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
