package workflow

import (
	"fmt"

	"github.com/agentx-labs/addonctl/internal/command"
	"github.com/agentx-labs/addonctl/internal/deferred"
)

var nameParam = command.Param{
	Name:        "name",
	Type:        command.String,
	Description: "The name of the add-on",
}

// Register adds the addon command family to reg.
func (s *Service) Register(reg *command.Registry) error {
	specs := []command.Spec{
		{
			Name:        "addon",
			Description: "Manipulate add-ons",
		},
		{
			Name:        "addon list",
			Description: "List the installed add-ons",
			Params: []command.Param{{
				Name:        "type",
				Type:        command.String,
				Description: "The type of the add-on: dictionary, extension, locale, plugin or theme",
				Default:     "",
			}},
			Exec: func(args command.Args) deferred.Outcome {
				return s.List(args.String("type"))
			},
		},
		{
			Name:        "addon enable",
			Description: "Enable the specified add-on",
			Params:      []command.Param{nameParam},
			Exec: func(args command.Args) deferred.Outcome {
				return s.Enable(args.String("name"))
			},
		},
		{
			Name:        "addon disable",
			Description: "Disable the specified add-on",
			Params:      []command.Param{nameParam},
			Exec: func(args command.Args) deferred.Outcome {
				return s.Disable(args.String("name"))
			},
		},
		{
			Name:        "addon install",
			Description: "Install the specified add-on from the catalog",
			Params: []command.Param{
				nameParam,
				{
					Name:        "force",
					Type:        command.Bool,
					Description: "Whether an add-on search currently in progress, if any, should be cancelled",
					Default:     false,
				},
			},
			Exec: func(args command.Args) deferred.Outcome {
				return s.Install(args.String("name"), args.Bool("force"))
			},
		},
		{
			Name:        "addon uninstall",
			Description: "Uninstall the specified add-on",
			Params:      []command.Param{nameParam},
			Exec: func(args command.Args) deferred.Outcome {
				return s.Uninstall(args.String("name"))
			},
		},
	}

	for _, spec := range specs {
		if err := reg.Register(spec); err != nil {
			return fmt.Errorf("registering %q: %w", spec.Name, err)
		}
	}
	return nil
}
