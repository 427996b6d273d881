package generator

// prelude is the fixed Python runtime text emitted before any translated
// program code, per spec.md §4.4 and SPEC_FULL.md's Runtime Prelude
// section: the bounded array type, inclusive FOR iteration, INPUT
// coercion, captured stdout I/O, the virtual file layer, and the built-in
// function implementations.
const prelude = `import sys


class __PseudoArray:
    def __init__(self, bounds, default):
        self._bounds = bounds
        self._default = default
        self._dims = [hi - lo + 1 for (lo, hi) in bounds]
        size = 1
        for d in self._dims:
            size *= d
        self._data = [default for _ in range(size)]

    def _offset(self, indices):
        if len(indices) != len(self._bounds):
            raise IndexError("wrong number of array indices")
        offset = 0
        stride = 1
        for i in range(len(indices) - 1, -1, -1):
            lo, hi = self._bounds[i]
            idx = indices[i]
            if idx < lo or idx > hi:
                raise IndexError("array index %d out of bounds [%d:%d]" % (idx, lo, hi))
            offset += (idx - lo) * stride
            stride *= self._dims[i]
        return offset

    def __getitem__(self, indices):
        if not isinstance(indices, tuple):
            indices = (indices,)
        return self._data[self._offset(indices)]

    def __setitem__(self, indices, value):
        if not isinstance(indices, tuple):
            indices = (indices,)
        self._data[self._offset(indices)] = value


def __inclusive_range(a, b, step):
    if step == 0:
        raise ValueError("FOR step must not be 0")
    if step > 0:
        n = a
        while n <= b:
            yield n
            n += step
    else:
        n = a
        while n >= b:
            yield n
            n += step


def __coerce_input(raw, type_name):
    if type_name == "INTEGER":
        return int(raw)
    if type_name == "REAL":
        return float(raw)
    if type_name == "BOOLEAN":
        return raw.strip().upper() == "TRUE"
    if type_name == "CHAR":
        return raw[:1]
    return raw


__stdout_lines = []
__stdin_lines = []
__stdin_pos = 0


def __input():
    global __stdin_pos
    if __stdin_pos < len(__stdin_lines):
        line = __stdin_lines[__stdin_pos]
        __stdin_pos += 1
        return line
    return ""


def __output(*values):
    __stdout_lines.append("".join(str(v) for v in values))


__VirtualFiles = {}
__OpenFiles = {}


def __openfile(name, mode):
    if name in __OpenFiles:
        raise RuntimeError("file '%s' is already open" % name)
    __OpenFiles[name] = mode
    if mode == "READ":
        __VirtualFiles.setdefault(name, [])
    else:
        __VirtualFiles[name] = []


def __readfile(name):
    if __OpenFiles.get(name) != "READ":
        raise RuntimeError("file '%s' is not open for READ" % name)
    lines = __VirtualFiles.get(name, [])
    if not lines:
        raise RuntimeError("end of file '%s'" % name)
    return lines.pop(0)


def __writefile(name, value):
    if __OpenFiles.get(name) != "WRITE":
        raise RuntimeError("file '%s' is not open for WRITE" % name)
    __VirtualFiles.setdefault(name, []).append(str(value))


def __closefile(name):
    __OpenFiles.pop(name, None)


def __div(a, b):
    return int(a) // int(b)


def __mod(a, b):
    return int(a) % int(b)


def __length(s):
    return len(s)


def __lcase(s):
    return s.lower()


def __ucase(s):
    return s.upper()


def __substring(s, start, length):
    start = max(1, start)
    return s[start - 1:start - 1 + length]


def __round(value, places):
    return round(float(value), int(places))


import random as __random_module


def __random():
    return __random_module.random()


`
