package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const tmpl = `-- {{.Name}}
-- Hooks receive the owning entity through the "entity" table:
--   entity.name, entity.get_position(), entity.set_position(x, y, z),
--   entity.rotate(dx, dy, dz), entity.set_active(bool), entity.has_tag(tag),
--   entity.set_prop(name, value) for properties of the entity's Go scripts

speed = speed or 1.0

function on_start()
	log("{{.Name}} started on " .. entity.name)
end

function on_update(dt)
	entity.rotate(0, 90 * speed * dt, 0)
end

function on_destroy()
end
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("newscript", flag.ContinueOnError)
	dir := fs.String("dir", "assets/scripts", "directory to write the script to")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: go run ./cmd/newscript [-dir assets/scripts] <ScriptName>\n")
		fmt.Fprintf(os.Stderr, "Example: go run ./cmd/newscript EnemyChaser\n")
		return fmt.Errorf("missing script name")
	}

	name := fs.Arg(0)
	if name == "" || !unicode.IsUpper(rune(name[0])) {
		return fmt.Errorf("script name must start with an uppercase letter")
	}

	outPath := filepath.Join(*dir, toSnakeCase(name)+".lua")
	if _, err := os.Stat(outPath); err == nil {
		return fmt.Errorf("%s already exists", outPath)
	}
	if err := os.MkdirAll(*dir, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, []byte(render(name)), 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	fmt.Printf("Created %s\n", outPath)
	fmt.Printf("Add it to a scene object:\n\n")
	fmt.Printf("  {\n")
	fmt.Printf("    \"type\": \"Script\",\n")
	fmt.Printf("    \"name\": \"LuaScript\",\n")
	fmt.Printf("    \"props\": { \"path\": \"%s\" }\n", filepath.ToSlash(outPath))
	fmt.Printf("  }\n")
	return nil
}

func render(name string) string {
	return strings.ReplaceAll(tmpl, "{{.Name}}", name)
}

func toSnakeCase(s string) string {
	var result []rune
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			result = append(result, '_')
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}
