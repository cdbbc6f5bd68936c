package queries

// referencesTS captures the use sites that become SymbolReference edges
// once resolved against the declared-symbol index, plus the dynamic-code
// constructs that the extractor reports as DynamicPatterns instead.
const referencesTS = `
(call_expression
  function: (identifier) @reference.call.target
) @reference.call

(call_expression
  function: (member_expression
    property: (property_identifier) @reference.call.member.target
  )
) @reference.call.member

(new_expression
  constructor: (identifier) @reference.new.target
) @reference.new

(member_expression
  property: (property_identifier) @reference.property.target
) @reference.property

(class_heritage
  (extends_clause
    value: (identifier) @reference.extends.target
  )
) @reference.extends

(class_heritage
  (implements_clause
    (type_identifier) @reference.implements.target
  )
) @reference.implements

(type_annotation
  (type_identifier) @reference.type.target
) @reference.type

(decorator
  (identifier) @reference.decorator.target
) @reference.decorator

(decorator
  (call_expression
    function: (identifier) @reference.decorator.target
  )
) @reference.decorator

(jsx_opening_element
  name: (identifier) @reference.jsx.target
) @reference.jsx

(jsx_self_closing_element
  name: (identifier) @reference.jsx.target
) @reference.jsx

(call_expression
  function: (identifier) @dynamic.eval.fn
  (#eq? @dynamic.eval.fn "eval")
) @dynamic.eval

(new_expression
  constructor: (identifier) @dynamic.function_ctor.fn
  (#eq? @dynamic.function_ctor.fn "Function")
) @dynamic.function_ctor

(call_expression
  function: (member_expression
    object: (identifier) @dynamic.reflect.object
    (#match? @dynamic.reflect.object "^Reflect$")
  )
) @dynamic.reflect

(subscript_expression
  index: (string)
) @dynamic.bracket_access.static

(subscript_expression
  index: (identifier)
) @dynamic.bracket_access.dynamic

(call_expression
  function: (member_expression
    object: (identifier) @dynamic.iteration.object
    property: (property_identifier) @dynamic.iteration.method
    (#match? @dynamic.iteration.method "^(keys|values|entries)$")
  )
  (#match? @dynamic.iteration.object "^Object$")
) @dynamic.iteration
`

// referencesJS mirrors referencesTS, dropping the TypeScript-only
// type_annotation/implements_clause forms.
const referencesJS = `
(call_expression
  function: (identifier) @reference.call.target
) @reference.call

(call_expression
  function: (member_expression
    property: (property_identifier) @reference.call.member.target
  )
) @reference.call.member

(new_expression
  constructor: (identifier) @reference.new.target
) @reference.new

(member_expression
  property: (property_identifier) @reference.property.target
) @reference.property

(class_heritage
  (extends_clause
    value: (identifier) @reference.extends.target
  )
) @reference.extends

(decorator
  (identifier) @reference.decorator.target
) @reference.decorator

(decorator
  (call_expression
    function: (identifier) @reference.decorator.target
  )
) @reference.decorator

(jsx_opening_element
  name: (identifier) @reference.jsx.target
) @reference.jsx

(jsx_self_closing_element
  name: (identifier) @reference.jsx.target
) @reference.jsx

(call_expression
  function: (identifier) @dynamic.eval.fn
  (#eq? @dynamic.eval.fn "eval")
) @dynamic.eval

(new_expression
  constructor: (identifier) @dynamic.function_ctor.fn
  (#eq? @dynamic.function_ctor.fn "Function")
) @dynamic.function_ctor

(call_expression
  function: (member_expression
    object: (identifier) @dynamic.reflect.object
    (#match? @dynamic.reflect.object "^Reflect$")
  )
) @dynamic.reflect

(subscript_expression
  index: (string)
) @dynamic.bracket_access.static

(subscript_expression
  index: (identifier)
) @dynamic.bracket_access.dynamic

(call_expression
  function: (member_expression
    object: (identifier) @dynamic.iteration.object
    property: (property_identifier) @dynamic.iteration.method
    (#match? @dynamic.iteration.method "^(keys|values|entries)$")
  )
  (#match? @dynamic.iteration.object "^Object$")
) @dynamic.iteration
`
