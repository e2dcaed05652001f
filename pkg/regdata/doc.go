// Package regdata parses register data files into validated register lists.
//
// The pipeline has two stages. A format adapter (LoadTOML, LoadYAML,
// LoadJSON or the extension-dispatching LoadFile) decodes the document into
// an ordered Mapping, normalizing every format to the same scalar types and
// the same duplicate-key policy. A Parser then walks the mapping and builds
// a regmap.RegisterList, enforcing the schema: recognized and required
// properties per node, type tags, modes, field packing.
//
// Data files in the old nested schema are detected and refused with
// ErrLegacyFormat; ConvertLegacy (or the "otr convert" command) rewrites
// them to the current flat schema.
package regdata
