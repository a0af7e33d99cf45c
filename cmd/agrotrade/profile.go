package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/agrotrade/internal/cli"
	"github.com/Veraticus/agrotrade/internal/common"
	"github.com/Veraticus/agrotrade/internal/model"
	"github.com/spf13/cobra"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show and update user profiles",
	}

	cmd.AddCommand(profileShowCmd())
	cmd.AddCommand(profileUpdateCmd())

	return cmd
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show UID",
		Short: "Show a user profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := initApp(ctx)
			if err != nil {
				return err
			}

			profile, found, err := a.query.FetchUserProfile(ctx, args[0])
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning(fmt.Sprintf("No profile for %s.", args[0])))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderProfile(profile))
			return nil
		},
	}
}

func renderProfile(p model.Profile) string {
	var b strings.Builder
	line := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s %s\n", cli.BoldStyle.Render(label+":"), value)
	}

	line("Role", string(p.Role))
	line("Location", strings.Join(nonEmpty(p.SubDistrict, p.District, p.Division), ", "))
	line("Contact", p.Contact)
	line("About", p.About)
	if p.Rating != nil {
		line("Rating", strconv.FormatFloat(*p.Rating, 'f', 1, 64))
	}
	if !p.JoinedDate.IsZero() {
		line("Joined", day(p.JoinedDate))
	}

	name := p.Name
	if name == "" {
		name = p.UID
	}
	return cli.RenderBox(cli.PersonIcon+" "+name, strings.TrimRight(b.String(), "\n"))
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func profileUpdateCmd() *cobra.Command {
	var (
		name, roleName, division, district, subDistrict string
		contact, about, avatarURL                       string
		rating                                          float64
	)

	cmd := &cobra.Command{
		Use:   "update UID",
		Short: "Update fields of a user profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var patch model.ProfilePatch
			for flag, target := range map[string]**string{
				"name":         &patch.Name,
				"division":     &patch.Division,
				"district":     &patch.District,
				"sub-district": &patch.SubDistrict,
				"contact":      &patch.Contact,
				"about":        &patch.About,
				"avatar-url":   &patch.AvatarURL,
			} {
				if flags.Changed(flag) {
					value, _ := flags.GetString(flag)
					*target = &value
				}
			}
			if flags.Changed("role") {
				role, err := model.ParseRole(roleName)
				if err != nil {
					return err
				}
				patch.Role = &role
			}
			if flags.Changed("rating") {
				patch.Rating = &rating
			}
			if patch.IsEmpty() {
				return common.NewUserError("nothing to update; pass at least one field flag", nil)
			}

			ctx := cmd.Context()
			a, err := initApp(ctx)
			if err != nil {
				return err
			}

			profile, err := a.writer.UpdateProfile(ctx, args[0], patch)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatSuccess("Profile updated"))
			fmt.Fprintln(out, renderProfile(profile))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&roleName, "role", "", "role (farmer or retailer)")
	cmd.Flags().StringVar(&division, "division", "", "division")
	cmd.Flags().StringVar(&district, "district", "", "district")
	cmd.Flags().StringVar(&subDistrict, "sub-district", "", "sub-district")
	cmd.Flags().StringVar(&contact, "contact", "", "contact details")
	cmd.Flags().StringVar(&about, "about", "", "about text")
	cmd.Flags().StringVar(&avatarURL, "avatar-url", "", "avatar image URL")
	cmd.Flags().Float64Var(&rating, "rating", 0, "rating")

	return cmd
}

func directoryCmd() *cobra.Command {
	var roleName, division string

	cmd := &cobra.Command{
		Use:   "directory",
		Short: "List the profiles of one role, optionally within a division",
		RunE: func(cmd *cobra.Command, _ []string) error {
			role, err := requireRole(roleName)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := initApp(ctx)
			if err != nil {
				return err
			}

			profiles, err := a.query.FetchDirectory(ctx, role, division)
			if err != nil {
				return err
			}
			return renderDirectory(cmd.OutOrStdout(), profiles)
		},
	}

	cmd.Flags().StringVar(&roleName, "role", "", "role to list (farmer or retailer)")
	cmd.Flags().StringVar(&division, "division", "", "only list profiles in this division")

	return cmd
}

func renderDirectory(out io.Writer, profiles []model.Profile) error {
	if len(profiles) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No profiles found."))
		return nil
	}

	table, err := cli.NewTable(out, "UID", "Name", "Division", "District", "Contact")
	if err != nil {
		return err
	}
	for _, p := range profiles {
		if err := table.Row(p.UID, p.Name, p.Division, p.District, p.Contact); err != nil {
			return err
		}
	}
	return table.Flush()
}
