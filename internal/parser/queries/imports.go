package queries

// importsTS captures import/export statements, including TypeScript's
// type-only forms, for cross-file edge resolution and export-symbol
// marking.
const importsTS = `
(import_statement
  source: (string (string_fragment) @import.source)
)

(import_specifier
  name: (identifier) @import.named
)

(import_specifier
  alias: (identifier) @import.alias
)

(import_statement
  (import_clause
    (identifier) @import.default
  )
)

(import_statement
  (import_clause
    (namespace_import
      (identifier) @import.namespace
    )
  )
)

(import_statement
  "type" @import.type.marker
  source: (string (string_fragment) @import.type.source)
)

(call_expression
  function: (import)
  arguments: (arguments (string (string_fragment) @import.dynamic.source))
) @import.dynamic

(export_statement
  declaration: (function_declaration
    name: (identifier) @export.name
  ) @export.declaration
)

(export_statement
  declaration: (class_declaration
    name: (type_identifier) @export.name
  ) @export.declaration
)

(export_statement
  declaration: (lexical_declaration
    (variable_declarator
      name: (identifier) @export.name
    )
  ) @export.declaration
)

(export_statement
  value: (identifier) @export.default
)

(export_specifier
  name: (identifier) @export.name
)

(export_statement
  source: (string (string_fragment) @export.reexport.source)
)

(export_statement
  (export_clause
    (export_specifier
      name: (identifier) @export.reexport.name
    )
  )
  source: (string)
)

(export_statement
  declaration: (interface_declaration
    name: (type_identifier) @export.name
  ) @export.declaration
)

(export_statement
  declaration: (type_alias_declaration
    name: (type_identifier) @export.name
  ) @export.declaration
)

(export_statement
  declaration: (enum_declaration
    name: (identifier) @export.name
  ) @export.declaration
)

(assignment_expression
  left: (member_expression
    object: (identifier) @commonjs.exports.object
    property: (property_identifier) @commonjs.exports.property
  )
  right: (identifier) @commonjs.exports.value
) @commonjs.exports.assignment

(call_expression
  function: (identifier) @commonjs.require.fn
  arguments: (arguments (string (string_fragment) @commonjs.require.source))
) @commonjs.require
`

// importsJS mirrors importsTS without the type-only forms that don't
// parse under the plain JavaScript grammar.
const importsJS = `
(import_statement
  source: (string (string_fragment) @import.source)
)

(import_specifier
  name: (identifier) @import.named
)

(import_specifier
  alias: (identifier) @import.alias
)

(import_statement
  (import_clause
    (identifier) @import.default
  )
)

(import_statement
  (import_clause
    (namespace_import
      (identifier) @import.namespace
    )
  )
)

(call_expression
  function: (import)
  arguments: (arguments (string (string_fragment) @import.dynamic.source))
) @import.dynamic

(export_statement
  declaration: (function_declaration
    name: (identifier) @export.name
  ) @export.declaration
)

(export_statement
  declaration: (class_declaration
    name: (identifier) @export.name
  ) @export.declaration
)

(export_statement
  declaration: (lexical_declaration
    (variable_declarator
      name: (identifier) @export.name
    )
  ) @export.declaration
)

(export_statement
  value: (identifier) @export.default
)

(export_specifier
  name: (identifier) @export.name
)

(export_statement
  source: (string (string_fragment) @export.reexport.source)
)

(assignment_expression
  left: (member_expression
    object: (identifier) @commonjs.exports.object
    property: (property_identifier) @commonjs.exports.property
  )
  right: (identifier) @commonjs.exports.value
) @commonjs.exports.assignment

(call_expression
  function: (identifier) @commonjs.require.fn
  arguments: (arguments (string (string_fragment) @commonjs.require.source))
) @commonjs.require
`
