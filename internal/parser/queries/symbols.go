package queries

// symbolsTS captures every TypeScript declaration form tracked as a
// TrackedSymbol. JSX/TSX source shares the same grammar node types, so one
// query string serves both variants of the TypeScript grammar.
const symbolsTS = `
(function_declaration
  name: (identifier) @function.name
) @function.definition

(variable_declarator
  name: (identifier) @function.name
  value: (function_expression)
) @function.definition

(variable_declarator
  name: (identifier) @variable.name
  value: (arrow_function)
) @variable.definition

(class_declaration
  name: (type_identifier) @class.name
) @class.definition

(public_field_definition
  name: (property_identifier) @class.name
  value: (class)
) @class.definition

(class_declaration
  body: (class_body
    (method_definition
      name: (property_identifier) @method.name
    ) @method.definition
  )
)

(class
  body: (class_body
    (method_definition
      name: (property_identifier) @method.name
    ) @method.definition
  )
)

(lexical_declaration
  (variable_declarator
    name: (identifier) @variable.name
  ) @variable.definition
)

(type_alias_declaration
  name: (type_identifier) @type.name
) @type.definition

(interface_declaration
  name: (type_identifier) @interface.name
) @interface.definition

(enum_declaration
  name: (identifier) @enum.name
) @enum.definition

(decorator) @decorator.site
`

// symbolsJS mirrors symbolsTS for plain JavaScript, where class/identifier
// node types differ slightly and generator functions and object-literal
// methods are additionally common.
const symbolsJS = `
(function_declaration
  name: (identifier) @function.name
) @function.definition

(generator_function_declaration
  name: (identifier) @function.name
) @function.definition

(variable_declarator
  name: (identifier) @function.name
  value: (function_expression)
) @function.definition

(variable_declarator
  name: (identifier) @variable.name
  value: (arrow_function)
) @variable.definition

(class_declaration
  name: (identifier) @class.name
) @class.definition

(variable_declarator
  name: (identifier) @class.name
  value: (class)
) @class.definition

(method_definition
  name: (property_identifier) @method.name
) @method.definition

(lexical_declaration
  (variable_declarator
    name: (identifier) @variable.name
  ) @variable.definition
)

(variable_declaration
  (variable_declarator
    name: (identifier) @variable.name
  ) @variable.definition
)

(pair
  key: (property_identifier) @function.name
  value: (function_expression)
) @function.definition

(pair
  key: (property_identifier) @function.name
  value: (arrow_function)
) @function.definition
`
