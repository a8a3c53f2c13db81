package executor

// HelpText lists every command the interpreter accepts.
const HelpText = `Commands:
  add expense a/<amount> [c/<category>] [d/<dd/MM/yyyy>] <description>
  edit expenses <index>
  delete expense <index>
  list expenses [c/<category>] [m/<MM/yyyy>]
  search expense <keyword>
  display expenses m/<MM/yyyy> [c/<category>]
  graph expenses <yyyy>
  add income a/<amount> [d/<dd/MM/yyyy>] <description>
  edit incomes <index>
  delete income <index>
  list incomes [m/<MM/yyyy>]
  search income <keyword>
  display incomes m/<MM/yyyy>
  graph incomes <yyyy>
  add budget a/<amount> m/<MM/yyyy> [c/<category>]
  list budget [m/<MM/yyyy>] [c/<category>]
  help
  exit
Only the first a/, c/, d/ or m/ is read as a field; later ones stay in the description.
Categories: FOOD, TRANSPORT, UTILITIES, ENTERTAINMENT, EDUCATION, OTHERS, UNCATEGORIZED`
